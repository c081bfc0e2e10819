package pdfconv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linnik/docgen/pkg/provider"
)

// Chain tries a list of converters in order until one produces a PDF.
type Chain struct {
	converters []provider.PDFConverter
	logger     *slog.Logger
}

// NewChain builds the default converter chain: wkhtmltopdf first, then
// headless Chrome.
func NewChain(logger *slog.Logger) *Chain {
	return &Chain{
		converters: []provider.PDFConverter{NewWkhtmltopdf(), NewChrome()},
		logger:     logger,
	}
}

// Name returns the chain's name for logging.
func (c *Chain) Name() string { return "chain" }

// Available reports whether any converter in the chain is usable.
func (c *Chain) Available() bool {
	for _, conv := range c.converters {
		if conv.Available() {
			return true
		}
	}
	return false
}

// Convert runs the first available converter that succeeds. Converter
// failures are logged and the next one is tried; the returned error only
// reflects the final outcome.
func (c *Chain) Convert(ctx context.Context, html []byte, outPath string) error {
	if !c.Available() {
		return fmt.Errorf("no pdf converter available")
	}
	var lastErr error
	for _, conv := range c.converters {
		if !conv.Available() {
			continue
		}
		if err := conv.Convert(ctx, html, outPath); err != nil {
			c.logger.Warn("pdf converter failed, trying next",
				"converter", conv.Name(), "error", err)
			lastErr = err
			continue
		}
		c.logger.Info("pdf generated", "converter", conv.Name(), "path", outPath)
		return nil
	}
	return fmt.Errorf("all pdf converters failed: %w", lastErr)
}
