package service_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linnik/docgen/infra/render"
	"github.com/linnik/docgen/pkg/config"
	"github.com/linnik/docgen/pkg/domain"
	"github.com/linnik/docgen/pkg/service"
)

// stubRateSource returns a fixed rate or a fixed error and counts calls.
type stubRateSource struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (s *stubRateSource) GetRate(_ context.Context, currency string, on time.Time) (*domain.ExchangeRate, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.ExchangeRate{
		Currency: currency,
		Rate:     s.rate,
		Date:     on,
		Source:   "stub",
	}, nil
}

func (s *stubRateSource) Name() string { return "stub" }

func testConfig(t *testing.T) *config.App {
	t.Helper()
	return &config.App{
		Company: config.Company{
			LegalForm:      "Индивидуальный предприниматель",
			LegalFormShort: "ИП",
			Name:           "ИП Линник Сергей Викторович",
			OGRNIP:         "321774600459820",
			INN:            "770400156257",
			SignatureName:  "С.В. Линник",
		},
		Client: config.Client{
			Name:         "Гуринов Вадим Александрович",
			ContractDate: "2023-08-15",
		},
		Bank: config.Bank{
			Name:        "АО \"ТБанк\"",
			BIC:         "044525974",
			CorrAccount: "30101810145250000974",
			Account:     "40802810800000871226",
		},
		Financial: config.Financial{BaseRate: 16667, Currency: "USD"},
		PDF:       config.PDF{GenerateHTML: true},
		Paths: config.Paths{
			Templates: "../../templates",
			Output:    t.TempDir(),
			Signature: filepath.Join(t.TempDir(), "absent.png"),
		},
	}
}

func newGenerator(t *testing.T, cfg *config.App, rates *stubRateSource) *service.Generator {
	t.Helper()
	renderer, err := render.New(cfg.Paths.Templates)
	require.NoError(t, err)
	return service.New(cfg, rates, renderer, nil, slog.New(slog.DiscardHandler))
}

func readArtifact(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}

func TestGenerateBoth(t *testing.T) {
	cfg := testConfig(t)
	rates := &stubRateSource{rate: decimal.NewFromInt(80)}
	gen := newGenerator(t, cfg, rates)
	on := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)

	res, err := gen.GenerateBoth(context.Background(), nil, on)
	require.NoError(t, err)

	// 16667 * 80 = 1333360, exact under both rounding policies.
	assert.Equal(t, int64(1333360), res.Amount.Amount)
	assert.Equal(t, domain.RUB, res.Amount.Currency)
	assert.Equal(t, 1, rates.calls, "rate must be fetched exactly once per run")

	require.True(t, strings.HasSuffix(res.ActPath, ".html"))
	actHTML := readArtifact(t, res.ActPath)
	assert.Contains(t, actHTML, "№ 1008")
	assert.Contains(t, actHTML, "1 333 360")
	assert.Contains(t, actHTML, "«10» августа 2025 г.")
	assert.Contains(t, actHTML, "Гуринов Вадим Александрович")
	assert.Contains(t, actHTML, "В.А. Гуринов")
	// Four default billing periods, chained on the 26th.
	assert.Contains(t, actHTML, "26.04.2025")
	assert.Contains(t, actHTML, "26.08.2025")

	// The invoice is always deliverable as PDF via the direct builder.
	require.True(t, strings.HasSuffix(res.InvoicePath, ".pdf"))
	info, err := os.Stat(res.InvoicePath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Contains(t, res.InvoicePath, "invoice_613414")
}

func TestGenerateActTruncates(t *testing.T) {
	cfg := testConfig(t)
	rates := &stubRateSource{rate: decimal.RequireFromString("80.5")}
	gen := newGenerator(t, cfg, rates)
	on := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)

	res, err := gen.GenerateAct(context.Background(), nil, on)
	require.NoError(t, err)

	// 16667 * 80.5 = 1341693.5, truncated on the act-only path.
	assert.Equal(t, int64(1341693), res.Amount.Amount)
	assert.NotEmpty(t, res.ActPath)
	assert.Empty(t, res.InvoicePath)

	actHTML := readArtifact(t, res.ActPath)
	assert.Contains(t, actHTML, "курс 80.5")
}

func TestGenerateBothRoundsToTens(t *testing.T) {
	cfg := testConfig(t)
	rates := &stubRateSource{rate: decimal.RequireFromString("80.5")}
	gen := newGenerator(t, cfg, rates)
	on := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)

	res, err := gen.GenerateBoth(context.Background(), nil, on)
	require.NoError(t, err)
	assert.Equal(t, int64(1341690), res.Amount.Amount)
}

func TestGenerateInvoiceOnly(t *testing.T) {
	cfg := testConfig(t)
	rates := &stubRateSource{rate: decimal.NewFromInt(80)}
	gen := newGenerator(t, cfg, rates)
	on := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

	res, err := gen.GenerateInvoice(context.Background(), on)
	require.NoError(t, err)
	assert.Empty(t, res.ActPath)
	assert.Contains(t, res.InvoicePath, "invoice_613241")
}

func TestRateFailureProducesNoArtifacts(t *testing.T) {
	cfg := testConfig(t)
	rates := &stubRateSource{err: domain.ErrRateUnavailable}
	gen := newGenerator(t, cfg, rates)

	_, err := gen.GenerateBoth(context.Background(), nil, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRateUnavailable))

	entries, err := os.ReadDir(cfg.Paths.Output)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed rate fetch must leave zero artifacts")
}

func TestMissingClientName(t *testing.T) {
	cfg := testConfig(t)
	cfg.Client.Name = ""
	rates := &stubRateSource{rate: decimal.NewFromInt(80)}
	gen := newGenerator(t, cfg, rates)

	_, err := gen.GenerateBoth(context.Background(), nil, time.Now())
	assert.True(t, errors.Is(err, domain.ErrMissingRequiredField))
	assert.Zero(t, rates.calls, "validation must fail before the rate fetch")
}

func TestPlainServicesGetFallbackPeriod(t *testing.T) {
	cfg := testConfig(t)
	rates := &stubRateSource{rate: decimal.NewFromInt(80)}
	gen := newGenerator(t, cfg, rates)
	on := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)

	services := []domain.ServiceInput{
		{Description: "Сопровождение сделки"},
		{Description: "Аудит договора"},
	}
	res, err := gen.GenerateAct(context.Background(), services, on)
	require.NoError(t, err)

	actHTML := readArtifact(t, res.ActPath)
	assert.Contains(t, actHTML, "Сопровождение сделки")
	assert.Contains(t, actHTML, "Аудит договора")
	assert.Contains(t, actHTML, "26.07.2025")
	assert.Contains(t, actHTML, "26.08.2025")
	assert.NotContains(t, actHTML, "26.04.2025")
}

func TestStructuredServicesKeepDates(t *testing.T) {
	cfg := testConfig(t)
	rates := &stubRateSource{rate: decimal.NewFromInt(80)}
	gen := newGenerator(t, cfg, rates)
	on := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)

	services := []domain.ServiceInput{{
		Description: "Редомицилиация MLOne",
		Start:       time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	}}
	res, err := gen.GenerateAct(context.Background(), services, on)
	require.NoError(t, err)

	actHTML := readArtifact(t, res.ActPath)
	assert.Contains(t, actHTML, "01.06.2025")
	assert.Contains(t, actHTML, "30.06.2025")
}
