// Package service assembles the two business documents: it validates
// identity fields, fetches the exchange rate exactly once per run, computes
// the payable amount under the caller-selected rounding policy and drives
// the rendering collaborators. A failed rate fetch aborts the run with zero
// artifacts.
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/linnik/docgen/infra/pdfconv"
	"github.com/linnik/docgen/infra/qr"
	"github.com/linnik/docgen/infra/render"
	"github.com/linnik/docgen/pkg/config"
	"github.com/linnik/docgen/pkg/document"
	"github.com/linnik/docgen/pkg/domain"
	"github.com/linnik/docgen/pkg/provider"
	"github.com/linnik/docgen/pkg/rutext"
)

// DefaultServiceDescription fills the act's service lines when the caller
// supplies no services at all; the four default billing periods each get
// this line.
const DefaultServiceDescription = "Анализ и реализация инвестиционных проектов (Кракен, Citymall)"

const noVAT = "Без НДС"

// Generator produces acts and invoices from configuration and a service
// list.
type Generator struct {
	cfg       *config.App
	rates     provider.RateSource
	renderer  *render.Renderer
	converter provider.PDFConverter
	logger    *slog.Logger
}

// New wires a Generator from its collaborators.
func New(
	cfg *config.App,
	rates provider.RateSource,
	renderer *render.Renderer,
	converter provider.PDFConverter,
	logger *slog.Logger,
) *Generator {
	return &Generator{
		cfg:       cfg,
		rates:     rates,
		renderer:  renderer,
		converter: converter,
		logger:    logger,
	}
}

// Result reports one generation run. Paths point at the delivered artifact
// for each document: the PDF when conversion succeeded, otherwise the HTML
// fallback.
type Result struct {
	RunID       uuid.UUID
	ActPath     string
	InvoicePath string
	Amount      domain.Money
	Rate        domain.ExchangeRate
}

// GenerateBoth produces the act and the invoice for one generation date.
// The rate is fetched once and threaded by value into both documents; the
// shared total uses the nearest-10 rounding policy.
func (g *Generator) GenerateBoth(ctx context.Context, services []domain.ServiceInput, on time.Time) (*Result, error) {
	res, err := g.begin(ctx, on, domain.RoundNearestTen)
	if err != nil {
		return nil, err
	}
	logger := g.logger.With("run_id", res.RunID)

	actPath, err := g.renderAct(ctx, logger, services, on, res)
	if err != nil {
		return nil, err
	}
	res.ActPath = actPath

	invoicePath, err := g.renderInvoice(ctx, logger, on, res)
	if err != nil {
		return nil, err
	}
	res.InvoicePath = invoicePath

	logger.Info("documents generated",
		"act", res.ActPath, "invoice", res.InvoicePath, "amount", res.Amount)
	return res, nil
}

// GenerateAct produces only the act. The act-only path truncates the exact
// amount instead of rounding to tens.
func (g *Generator) GenerateAct(ctx context.Context, services []domain.ServiceInput, on time.Time) (*Result, error) {
	res, err := g.begin(ctx, on, domain.RoundTruncate)
	if err != nil {
		return nil, err
	}
	logger := g.logger.With("run_id", res.RunID)

	actPath, err := g.renderAct(ctx, logger, services, on, res)
	if err != nil {
		return nil, err
	}
	res.ActPath = actPath
	logger.Info("act generated", "path", res.ActPath, "amount", res.Amount)
	return res, nil
}

// GenerateInvoice produces only the invoice, under the nearest-10 policy.
func (g *Generator) GenerateInvoice(ctx context.Context, on time.Time) (*Result, error) {
	res, err := g.begin(ctx, on, domain.RoundNearestTen)
	if err != nil {
		return nil, err
	}
	logger := g.logger.With("run_id", res.RunID)

	invoicePath, err := g.renderInvoice(ctx, logger, on, res)
	if err != nil {
		return nil, err
	}
	res.InvoicePath = invoicePath
	logger.Info("invoice generated", "path", res.InvoicePath, "amount", res.Amount)
	return res, nil
}

// begin validates required fields, fetches the rate and computes the total.
// Everything that can fail before any artifact is written happens here.
func (g *Generator) begin(ctx context.Context, on time.Time, policy domain.Rounding) (*Result, error) {
	if g.cfg.Client.Name == "" {
		return nil, fmt.Errorf("%w: customer name", domain.ErrMissingRequiredField)
	}
	if _, err := g.cfg.Client.Date(); err != nil {
		return nil, fmt.Errorf("%w: contract date", domain.ErrMissingRequiredField)
	}

	rate, err := g.rates.GetRate(ctx, g.cfg.Financial.Currency, on)
	if err != nil {
		g.logger.Error("rate fetch failed, aborting generation",
			"currency", g.cfg.Financial.Currency, "error", err)
		return nil, err
	}

	amount := domain.ComputeAmount(g.cfg.Financial.BaseRate, *rate, policy)
	g.logger.Info("amount computed",
		"base_rate", g.cfg.Financial.BaseRate,
		"rate", rate.Rate.String(),
		"policy", policy.String(),
		"amount", amount.Amount)

	return &Result{
		RunID:  uuid.New(),
		Amount: amount,
		Rate:   *rate,
	}, nil
}

func (g *Generator) renderAct(ctx context.Context, logger *slog.Logger, services []domain.ServiceInput, on time.Time, res *Result) (string, error) {
	actCtx := g.buildActContext(logger, services, on, res)

	html, err := g.renderer.Render("act.html", actCtx)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("Акт_%s", on.Format("200601"))
	return g.writeArtifact(ctx, logger, name, html, nil)
}

func (g *Generator) renderInvoice(ctx context.Context, logger *slog.Logger, on time.Time, res *Result) (string, error) {
	invCtx, err := g.buildInvoiceContext(on, res)
	if err != nil {
		return "", err
	}

	html, err := g.renderer.Render("invoice.html", invCtx)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("invoice_%s", invCtx.Invoice.Number)
	return g.writeArtifact(ctx, logger, name, html, invCtx)
}

func (g *Generator) buildActContext(logger *slog.Logger, services []domain.ServiceInput, on time.Time, res *Result) *document.Act {
	var periods []domain.ServicePeriod
	if len(services) == 0 {
		for _, p := range domain.DefaultPeriods(on) {
			p.Description = DefaultServiceDescription
			periods = append(periods, p)
		}
	} else {
		periods = domain.NormalizeServices(services, on, logger)
	}

	rows := make([]document.ServiceRow, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, document.ServiceRow{
			Description: p.Description,
			StartDate:   p.StartText(),
			EndDate:     p.EndText(),
		})
	}

	contractDate, _ := g.cfg.Client.Date()
	company := g.cfg.Company

	return &document.Act{
		Number: domain.ActNumber(on),
		Document: document.Date{
			Day:       on.Format("02"),
			MonthName: rutext.MonthGenitive(on.Month()),
			Year:      on.Year(),
		},
		Customer: document.ActCustomer{
			Name:          g.cfg.Client.Name,
			SignatureName: rutext.ShortName(g.cfg.Client.Name),
		},
		Contractor: document.Party{
			LegalForm:      company.LegalForm,
			LegalFormShort: company.LegalFormShort,
			Name:           company.Name,
			OGRNIP:         company.OGRNIP,
			INN:            company.INN,
			SignatureName:  company.SignatureName,
		},
		Contract: document.Date{
			Day:       contractDate.Format("02"),
			MonthName: rutext.MonthGenitive(contractDate.Month()),
			Year:      contractDate.Year(),
		},
		Services: rows,
		Totals: document.ActTotals{
			Value:  res.Amount.Amount,
			FXRate: res.Rate.Rate.String(),
		},
		Signatures: document.Signatures{Director: g.loadSignature()},
	}
}

func (g *Generator) buildInvoiceContext(on time.Time, res *Result) (*document.Invoice, error) {
	company := g.cfg.Company
	bank := g.cfg.Bank
	number := domain.InvoiceNumber(on.Year(), on.Month())
	total := res.Amount.Amount

	qrURI, err := qr.DataURI(qr.Payload(company, bank, total, number, on))
	if err != nil {
		return nil, err
	}

	return &document.Invoice{
		Payee: document.Payee{
			LegalForm:       company.LegalForm,
			LegalFormShort:  company.LegalFormShort,
			Name:            company.Name,
			INN:             company.INN,
			BankName:        bank.Name,
			BankBIC:         bank.BIC,
			BankCorrAccount: bank.CorrAccount,
			AccountNumber:   bank.Account,
			DetailsString: fmt.Sprintf("%s, ИНН %s, р/с %s, в банке %s, БИК %s, к/с %s",
				company.Name, company.INN, bank.Account, bank.Name, bank.BIC, bank.CorrAccount),
		},
		Payer: document.Payer{Name: g.cfg.Client.Name},
		Invoice: document.InvoiceMeta{
			Number: number,
			Date:   rutext.DocumentDate(on) + " г.",
		},
		Items: []document.Item{{
			Name:     "Консультационные услуги",
			Quantity: 1,
			Price:    total,
			VATRate:  noVAT,
			Total:    total,
		}},
		Totals: document.InvoiceTotals{
			Total:        total,
			TotalInWords: rutext.AmountInWords(total),
		},
		QRCodeDataURI: template.URL(qrURI),
		Signatures:    document.Signatures{Director: g.loadSignature()},
	}, nil
}

// writeArtifact persists the rendered document: HTML when enabled, then the
// PDF through the converter chain. A failed or unavailable conversion falls
// back to the direct PDF builder for invoices, then to the HTML artifact;
// with HTML disabled too the document fails.
func (g *Generator) writeArtifact(ctx context.Context, logger *slog.Logger, name string, html []byte, inv *document.Invoice) (string, error) {
	if err := os.MkdirAll(g.cfg.Paths.Output, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	var htmlPath string
	if g.cfg.PDF.GenerateHTML {
		htmlPath = filepath.Join(g.cfg.Paths.Output, name+".html")
		if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
			return "", fmt.Errorf("writing html artifact: %w", err)
		}
	}

	pdfPath := filepath.Join(g.cfg.Paths.Output, name+".pdf")
	if g.converter != nil && g.converter.Available() {
		if err := g.converter.Convert(ctx, html, pdfPath); err == nil {
			return pdfPath, nil
		} else {
			logger.Warn("pdf conversion failed", "document", name, "error", err)
		}
	}

	if inv != nil {
		if err := pdfconv.BuildInvoicePDF(inv, pdfPath); err == nil {
			logger.Info("invoice pdf built directly", "path", pdfPath)
			return pdfPath, nil
		} else {
			logger.Warn("direct invoice pdf failed", "error", err)
		}
	}

	if htmlPath != "" {
		logger.Info("delivering html artifact", "path", htmlPath)
		return htmlPath, nil
	}
	return "", domain.ErrConversionUnavailable
}

// loadSignature reads the configured signature image and returns it as a
// base64 PNG data URI, or an empty string when the file is absent. The
// bytes are never inspected.
func (g *Generator) loadSignature() template.URL {
	raw, err := os.ReadFile(g.cfg.Paths.Signature)
	if err != nil {
		g.logger.Warn("signature not loaded", "path", g.cfg.Paths.Signature, "error", err)
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(raw))
}
