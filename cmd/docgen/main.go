// Command docgen generates the service-completion act and the payment
// invoice from configuration and a list of service descriptions passed as
// arguments. With no arguments the act uses the four default billing
// periods.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/linnik/docgen/infra/cbr"
	"github.com/linnik/docgen/infra/pdfconv"
	"github.com/linnik/docgen/infra/render"
	"github.com/linnik/docgen/pkg/config"
	"github.com/linnik/docgen/pkg/domain"
	"github.com/linnik/docgen/pkg/service"
)

func main() {
	actOnly := flag.Bool("act-only", false, "generate only the act (truncation rounding)")
	invoiceOnly := flag.Bool("invoice-only", false, "generate only the invoice")
	dateFlag := flag.String("date", "", "generation date (2006-01-02, default today)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger, *actOnly, *invoiceOnly, *dateFlag, flag.Args()); err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, actOnly, invoiceOnly bool, dateFlag string, args []string) error {
	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	on := time.Now()
	if dateFlag != "" {
		on, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
	}

	renderer, err := render.New(cfg.Paths.Templates)
	if err != nil {
		return err
	}

	gen := service.New(
		cfg,
		cbr.New(cfg.CBR, logger),
		renderer,
		pdfconv.NewChain(logger),
		logger,
	)

	var services []domain.ServiceInput
	for _, arg := range args {
		services = append(services, domain.ServiceInput{Description: arg})
	}

	ctx := context.Background()

	var res *service.Result
	switch {
	case actOnly:
		res, err = gen.GenerateAct(ctx, services, on)
	case invoiceOnly:
		res, err = gen.GenerateInvoice(ctx, on)
	default:
		res, err = gen.GenerateBoth(ctx, services, on)
	}
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Println("Document generation complete")
	if res.ActPath != "" {
		color.Green("✓ Act:     %s", res.ActPath)
	}
	if res.InvoicePath != "" {
		color.Green("✓ Invoice: %s", res.InvoicePath)
	}
	fmt.Printf("  Amount:  %d RUB (rate %s on %s)\n",
		res.Amount.Amount, res.Rate.Rate.String(), res.Rate.Date.Format("02.01.2006"))
	return nil
}
