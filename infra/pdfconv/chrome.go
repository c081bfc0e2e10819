package pdfconv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
}

// Chrome converts HTML to PDF with a headless Chrome or Chromium binary.
type Chrome struct {
	path string
}

// NewChrome probes for a Chrome or Chromium binary on PATH.
func NewChrome() *Chrome {
	for _, name := range chromeCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return &Chrome{path: path}
		}
	}
	return &Chrome{}
}

// Name returns the converter's name for logging.
func (c *Chrome) Name() string { return "chrome-headless" }

// Available reports whether a browser binary was found.
func (c *Chrome) Available() bool { return c.path != "" }

// Convert writes html to a temporary file and prints it to PDF headlessly.
func (c *Chrome) Convert(ctx context.Context, html []byte, outPath string) error {
	if !c.Available() {
		return fmt.Errorf("chrome not available")
	}
	tmp, err := writeTempHTML(html)
	if err != nil {
		return err
	}
	defer os.Remove(tmp) //nolint:errcheck

	cmd := exec.CommandContext(ctx, c.path,
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--print-to-pdf="+outPath,
		"--print-to-pdf-no-header",
		"file://"+tmp,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("chrome headless failed: %v: %s", err, out)
	}
	return nil
}
