// Package qr builds the payment QR code for invoices following the СПКР
// layout (ГОСТ Р 56042-2014): an "ST00012|" header followed by pipe-joined
// requisite fields.
package qr

import (
	"encoding/base64"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/linnik/docgen/pkg/config"
)

// Payload assembles the machine-readable payment string. The sum is encoded
// in kopecks per the standard; the purpose line names the invoice and its
// date.
func Payload(company config.Company, bank config.Bank, sumRubles int64, invoiceNumber string, on time.Time) string {
	return fmt.Sprintf(
		"ST00012|Name=%s|PersonalAcc=%s|BankName=%s|BIC=%s|CorrespAcc=%s|PayeeINN=%s|KPP=%s|Sum=%d|Purpose=Оплата по счету №%s от %s",
		company.Name,
		bank.Account,
		bank.Name,
		bank.BIC,
		bank.CorrAccount,
		company.INN,
		bank.KPP,
		sumRubles*100,
		invoiceNumber,
		on.Format("02.01.2006"),
	)
}

// DataURI encodes the payload as a PNG QR code and returns it as a base64
// data URI ready for embedding in the invoice template.
func DataURI(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Low, 256)
	if err != nil {
		return "", fmt.Errorf("encoding payment qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
