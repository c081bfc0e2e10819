// Package render renders document HTML from the templates directory.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/linnik/docgen/pkg/domain"
)

// Renderer renders named HTML templates with a prepared data context. Every
// monetary value in the context arrives with rounding already applied;
// templates only format, never re-round.
type Renderer struct {
	tmpl *template.Template
}

// New parses every *.html template in dir.
func New(dir string) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"formatAmount": formatAmount,
		"add1":         func(i int) int { return i + 1 },
	}).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing templates in %s: %v", domain.ErrRenderFailed, dir, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named template and returns the HTML document.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRenderFailed, name, err)
	}
	return buf.Bytes(), nil
}

// formatAmount groups ruble amounts with spaces: 1333360 -> "1 333 360".
func formatAmount(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	return string(out)
}
