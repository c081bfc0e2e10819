// Package document defines the render contexts handed to the templating and
// PDF collaborators. Field values arrive fully prepared: amounts are
// pre-rounded, dates pre-formatted, the signature is an opaque data URI the
// core never inspects.
package document

import "html/template"

// Date is a document date split the way Russian documents print it:
// "10" "августа" 2025.
type Date struct {
	Day       string
	MonthName string
	Year      int
}

// Party identifies the contractor issuing a document.
type Party struct {
	LegalForm      string
	LegalFormShort string
	Name           string
	OGRNIP         string
	INN            string
	SignatureName  string
}

// ServiceRow is one rendered line of the act's service table.
type ServiceRow struct {
	Description string
	StartDate   string
	EndDate     string
}

// Act is the render context for the service-completion act.
type Act struct {
	Number     string
	Document   Date
	Customer   ActCustomer
	Contractor Party
	Contract   Date
	Services   []ServiceRow
	Totals     ActTotals
	Signatures Signatures
}

// ActCustomer identifies the customer on the act.
type ActCustomer struct {
	Name          string
	SignatureName string
}

// ActTotals carries the act's computed total and the rate it came from.
type ActTotals struct {
	Value  int64
	FXRate string
}

// Signatures carries the optional director signature as a base64 PNG data
// URI, forwarded unmodified to the renderer. Typed template.URL so the
// renderer does not strip the data scheme.
type Signatures struct {
	Director template.URL
}

// Invoice is the render context for the payment invoice.
type Invoice struct {
	Payee         Payee
	Payer         Payer
	Invoice       InvoiceMeta
	Items         []Item
	Totals        InvoiceTotals
	QRCodeDataURI template.URL
	Signatures    Signatures
}

// Payee is the party receiving payment, with bank routing details.
type Payee struct {
	LegalForm       string
	LegalFormShort  string
	Name            string
	INN             string
	BankName        string
	BankBIC         string
	BankCorrAccount string
	AccountNumber   string
	DetailsString   string
}

// Payer is the party the invoice is issued to.
type Payer struct {
	Name string
}

// InvoiceMeta is the invoice's number and spelled-out date.
type InvoiceMeta struct {
	Number string
	Date   string
}

// Item is one invoice line.
type Item struct {
	Name     string
	Quantity int
	Price    int64
	VATRate  string
	Total    int64
}

// InvoiceTotals carries the payable total and its spelled-out form.
type InvoiceTotals struct {
	Total        int64
	TotalInWords string
}
