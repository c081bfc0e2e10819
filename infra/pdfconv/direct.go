package pdfconv

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/linnik/docgen/pkg/document"
)

// BuildInvoicePDF renders the invoice directly to PDF, bypassing the HTML
// pipeline. Used when no HTML converter is installed. Cyrillic text goes
// through the cp1251 translator, which covers everything these documents
// print.
func BuildInvoicePDF(inv *document.Invoice, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Счет на оплату № %s от %s", inv.Invoice.Number, inv.Invoice.Date)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr("Получатель: "+inv.Payee.DetailsString))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr("Плательщик: "+inv.Payer.Name))
	pdf.Ln(10)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, tr("Наименование"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, tr("Кол-во"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr("Цена"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, tr("НДС"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr("Сумма"), "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(90, 6, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, tr(item.VATRate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", item.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Итого: %d руб.", inv.Totals.Total)))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, tr("Сумма прописью: "+inv.Totals.TotalInWords))
	pdf.Ln(10)

	pdf.Cell(0, 6, tr("Руководитель: "+inv.Payee.Name))

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating invoice pdf: %w", err)
	}
	defer f.Close() //nolint:errcheck
	if err := pdf.Output(f); err != nil {
		return fmt.Errorf("writing invoice pdf: %w", err)
	}
	return nil
}
