// Package config loads and validates application configuration from the
// environment, optionally seeded from a .env file. Every identity block the
// documents need (company, client, bank) is an explicit struct with typed,
// validated fields; missing required fields are rejected at load time, not
// at first use.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/linnik/docgen/pkg/domain"
)

// Company describes the contractor issuing the documents.
type Company struct {
	LegalForm      string `envconfig:"LEGAL_FORM" default:"Индивидуальный предприниматель"`
	LegalFormShort string `envconfig:"LEGAL_FORM_SHORT" default:"ИП"`
	Name           string `envconfig:"NAME" validate:"required"`
	OGRNIP         string `envconfig:"OGRNIP"`
	INN            string `envconfig:"INN" validate:"required"`
	SignatureName  string `envconfig:"SIGNATURE_NAME"`
}

// Client describes the customer the documents are issued to.
type Client struct {
	Name string `envconfig:"NAME" validate:"required"`
	// ContractDate is the contract date in ISO form (2006-01-02).
	ContractDate string `envconfig:"CONTRACT_DATE" validate:"required,datetime=2006-01-02"`
}

// Date parses the contract date. Validation guarantees the format, so the
// returned error only matters for structs constructed outside Load.
func (c Client) Date() (time.Time, error) {
	return time.Parse("2006-01-02", c.ContractDate)
}

// Bank holds the transfer routing details printed on the invoice and encoded
// in the payment QR.
type Bank struct {
	Name        string `envconfig:"NAME" validate:"required"`
	BIC         string `envconfig:"BIC" validate:"required"`
	CorrAccount string `envconfig:"CORR_ACCOUNT" validate:"required"`
	Account     string `envconfig:"ACCOUNT" validate:"required"`
	KPP         string `envconfig:"KPP"`
}

// Financial is the billing arrangement: a fixed base rate denominated in the
// foreign reference currency.
type Financial struct {
	BaseRate int64  `envconfig:"BASE_RATE" validate:"required,gt=0"`
	Currency string `envconfig:"CURRENCY" default:"USD" validate:"len=3"`
}

// CBR configures the rate-source client.
type CBR struct {
	URL     string        `envconfig:"URL" default:"https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`
}

// Telegram configures the bot front end. An empty ChatID authorizes every
// chat.
type Telegram struct {
	Token  string `envconfig:"BOT_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

// PDF controls artifact output.
type PDF struct {
	// GenerateHTML keeps the rendered HTML next to the PDF and enables the
	// HTML fallback when conversion fails.
	GenerateHTML bool `envconfig:"GENERATE_HTML" default:"true"`
}

// Paths locates templates and output on disk.
type Paths struct {
	Templates string `envconfig:"TEMPLATES" default:"templates"`
	Output    string `envconfig:"OUTPUT" default:"output"`
	Signature string `envconfig:"SIGNATURE" default:"signatures/signature.png"`
	Storage   string `envconfig:"STORAGE" default:"bot_data.json"`
}

// App is the complete application configuration.
type App struct {
	Company   Company   `envconfig:"COMPANY"`
	Client    Client    `envconfig:"CLIENT"`
	Bank      Bank      `envconfig:"BANK"`
	Financial Financial `envconfig:"FINANCIAL"`
	CBR       CBR       `envconfig:"CBR"`
	Telegram  Telegram  `envconfig:"TELEGRAM"`
	PDF       PDF       `envconfig:"PDF"`
	Paths     Paths     `envconfig:"PATHS"`
}

var validate = validator.New()

// Validate checks every required field and returns
// domain.ErrMissingRequiredField with the offending fields named.
func (c *App) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fields []string
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
			return fmt.Errorf("%w: %v", domain.ErrMissingRequiredField, fields)
		}
		return err
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}
