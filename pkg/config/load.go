package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix namespaces every environment variable this application reads,
// e.g. DOCGEN_CLIENT_NAME or DOCGEN_FINANCIAL_BASE_RATE.
const Prefix = "DOCGEN"

// Load reads configuration from the environment, seeded from a .env file
// when one exists, and validates it. Validation failures carry
// domain.ErrMissingRequiredField so callers can fail fast before any
// computation.
func Load(logger *slog.Logger) (*App, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system environment variables")
	} else {
		logger.Info("environment variables loaded from .env file")
	}

	var cfg App
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("config loaded",
		"client", cfg.Client.Name,
		"currency", cfg.Financial.Currency,
		"base_rate", cfg.Financial.BaseRate,
		"templates", cfg.Paths.Templates,
		"output", cfg.Paths.Output,
	)
	return &cfg, nil
}
