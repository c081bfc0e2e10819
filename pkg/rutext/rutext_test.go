package rutext_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linnik/docgen/pkg/rutext"
)

func TestMonthGenitive(t *testing.T) {
	assert.Equal(t, "января", rutext.MonthGenitive(time.January))
	assert.Equal(t, "августа", rutext.MonthGenitive(time.August))
	assert.Equal(t, "декабря", rutext.MonthGenitive(time.December))
}

func TestDocumentDate(t *testing.T) {
	d := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "10 августа 2025", rutext.DocumentDate(d))

	d = time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05 января 2024", rutext.DocumentDate(d))
}

func TestShortName(t *testing.T) {
	tests := []struct {
		name string
		full string
		want string
	}{
		{"three part name shortens", "Гуринов Вадим Александрович", "В.А. Гуринов"},
		{"single name unchanged", "Гуринов", "Гуринов"},
		{"two part name unchanged", "Вадим Гуринов", "Вадим Гуринов"},
		{"four parts unchanged", "Иванов Иван Иванович Младший", "Иванов Иван Иванович Младший"},
		{"empty unchanged", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rutext.ShortName(tt.full))
		})
	}
}
