package renderer

import (
	"io"
	"strconv"

	"github.com/etnz/cashbill"
	"github.com/jung-kurt/gofpdf"
)

// pdfColumns are the widths, in mm, of the item table columns.
var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Sl. No.", 18, "C"},
	{"PARTICULARS", 82, "L"},
	{"Qty.", 20, "C"},
	{"Rate", 35, "R"},
	{"AMOUNT", 35, "R"},
}

// PDF writes the printable invoice as an A4 PDF document.
//
// Core PDF fonts have no rupee sign, amounts are prefixed with "Rs." instead.
func (s Shop) PDF(w io.Writer, inv cashbill.Invoice) error {
	v := s.view(inv, documentDate)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Invoice - "+v.Number), false)
	pdf.SetCreator(tr(v.Shop.Name), false)
	pdf.AddPage()

	// Header.
	pdf.SetFont("Courier", "B", 11)
	pdf.CellFormat(0, 6, "CASH BILL", "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "B", 20)
	pdf.CellFormat(0, 10, tr(v.Shop.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 10)
	pdf.CellFormat(0, 5, tr("Cell: "+v.Shop.Phone), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, tr(v.Shop.Address), "B", 1, "C", false, 0, "")
	pdf.Ln(3)

	// Details.
	pdf.CellFormat(95, 6, tr("No. "+v.Number), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Date: "+v.Date, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, tr("Name: "+v.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Mobile: "+v.MobileNumber), "B", 1, "L", false, 0, "")
	pdf.Ln(3)

	// Items.
	pdf.SetFont("Courier", "B", 10)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Courier", "", 10)
	for _, it := range v.Items {
		cells := []string{strconv.Itoa(it.Index), tr(it.Name), strconv.Itoa(it.Quantity), it.Rate, it.Amount}
		for i, c := range pdfColumns {
			pdf.CellFormat(c.width, 7, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	var labelWidth float64
	for _, c := range pdfColumns[:len(pdfColumns)-1] {
		labelWidth += c.width
	}
	pdf.SetFont("Courier", "B", 10)
	pdf.CellFormat(labelWidth, 7, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(pdfColumns[len(pdfColumns)-1].width, 7, "Rs. "+inv.TotalAmount().Plain(), "1", 1, "R", false, 0, "")

	// Footer.
	pdf.Ln(8)
	pdf.CellFormat(95, 6, "NO RETURN & NO EXCHANGE", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, tr("For "+v.Shop.Name), "", 1, "R", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Courier", "I", 10)
	pdf.CellFormat(0, 6, "Authorized Signatory", "", 1, "R", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Courier", "B", 10)
	pdf.CellFormat(0, 6, "Thank You Visit Again", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
