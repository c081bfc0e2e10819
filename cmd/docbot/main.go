// Command docbot runs the Telegram front end for document generation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/linnik/docgen/bot"
	"github.com/linnik/docgen/infra/cbr"
	"github.com/linnik/docgen/infra/pdfconv"
	"github.com/linnik/docgen/infra/render"
	"github.com/linnik/docgen/infra/storage"
	"github.com/linnik/docgen/pkg/config"
	"github.com/linnik/docgen/pkg/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger); err != nil {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("DOCGEN_TELEGRAM_BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("connecting to telegram: %w", err)
	}
	logger.Info("authorized on telegram", "account", api.Self.UserName)

	renderer, err := render.New(cfg.Paths.Templates)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Paths.Storage, logger)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	gen := service.New(
		cfg,
		cbr.New(cfg.CBR, logger),
		renderer,
		pdfconv.NewChain(logger),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot.New(api, cfg.Telegram, gen, store, logger).Run(ctx)
	logger.Info("bot shut down")
	return nil
}
