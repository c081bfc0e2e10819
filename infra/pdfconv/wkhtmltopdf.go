// Package pdfconv converts rendered HTML documents to PDF through external
// tools, probed at construction and tried in preference order. When no tool
// produces a PDF the caller falls back to the HTML artifact, or to the
// direct gofpdf builder for invoices.
package pdfconv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Wkhtmltopdf converts HTML to PDF with the wkhtmltopdf executable.
type Wkhtmltopdf struct {
	path string
}

// NewWkhtmltopdf probes for wkhtmltopdf on PATH.
func NewWkhtmltopdf() *Wkhtmltopdf {
	path, err := exec.LookPath("wkhtmltopdf")
	if err != nil {
		return &Wkhtmltopdf{}
	}
	return &Wkhtmltopdf{path: path}
}

// Name returns the converter's name for logging.
func (w *Wkhtmltopdf) Name() string { return "wkhtmltopdf" }

// Available reports whether the executable was found.
func (w *Wkhtmltopdf) Available() bool { return w.path != "" }

// Convert writes html to a temporary file and runs wkhtmltopdf on it.
func (w *Wkhtmltopdf) Convert(ctx context.Context, html []byte, outPath string) error {
	if !w.Available() {
		return fmt.Errorf("wkhtmltopdf not available")
	}
	tmp, err := writeTempHTML(html)
	if err != nil {
		return err
	}
	defer os.Remove(tmp) //nolint:errcheck

	cmd := exec.CommandContext(ctx, w.path,
		"--page-size", "A4",
		"--margin-top", "0.75in",
		"--margin-right", "0.75in",
		"--margin-bottom", "0.75in",
		"--margin-left", "0.75in",
		"--encoding", "UTF-8",
		"--disable-smart-shrinking",
		tmp, outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("wkhtmltopdf failed: %v: %s", err, out)
	}
	return nil
}

func writeTempHTML(html []byte) (string, error) {
	f, err := os.CreateTemp("", "docgen-*.html")
	if err != nil {
		return "", fmt.Errorf("creating temp html: %w", err)
	}
	if _, err := f.Write(html); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing temp html: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
