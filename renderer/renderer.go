// Package renderer turns invoices into the documents handed to customers: a
// plain text message, a printable HTML page or PDF, and history reports.
package renderer

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"

	"github.com/etnz/cashbill"
	"github.com/etnz/cashbill/date"
	"github.com/samber/lo"
)

//go:embed templates/*
var templates embed.FS

var (
	textTemplates = texttemplate.Must(texttemplate.New("").ParseFS(templates, "templates/*.txt", "templates/*.md"))
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").ParseFS(templates, "templates/*.html"))
)

// Date layouts, as en-IN displays them.
const (
	textDate        = "02 Jan 2006"
	documentDate    = "2/1/2006"
	historyDatetime = "2/1/2006, 3:04:05 pm"
)

// Shop holds the details printed on every bill.
type Shop struct {
	Name    string `validate:"required"`
	Address string
	Phone   string
}

// DefaultShop is used when nothing has been configured.
var DefaultShop = Shop{
	Name:    "E-COMMERCE",
	Address: "[Enter Your Business Address Here]",
	Phone:   "[Enter Number]",
}

type invoiceView struct {
	Shop         Shop
	Number       string
	Date         string
	CustomerName string
	MobileNumber string
	Items        []itemView
	TotalAmount  string
}

type itemView struct {
	Index    int // 1-based
	Name     string
	Quantity int
	Rate     string // without symbol
	Amount   string // without symbol
	Total    string
}

func (s Shop) view(inv cashbill.Invoice, layout string) invoiceView {
	return invoiceView{
		Shop:         s,
		Number:       inv.Number(),
		Date:         inv.Date().In(date.Location).Format(layout),
		CustomerName: inv.CustomerName(),
		MobileNumber: inv.MobileNumber(),
		Items: lo.Map(inv.Items(), func(it cashbill.LineItem, i int) itemView {
			return itemView{
				Index:    i + 1,
				Name:     it.Name,
				Quantity: it.Quantity,
				Rate:     it.UnitPrice.Plain(),
				Amount:   it.Total.Plain(),
				Total:    it.Total.String(),
			}
		}),
		TotalAmount: inv.TotalAmount().String(),
	}
}

// PlainText renders the invoice as a message to send to the customer.
func (s Shop) PlainText(inv cashbill.Invoice) string {
	var b strings.Builder
	if err := textTemplates.ExecuteTemplate(&b, "invoice.txt", s.view(inv, textDate)); err != nil {
		return fmt.Sprintf("error executing template %q: %v", "invoice.txt", err)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Document renders the invoice as a standalone printable HTML page.
func (s Shop) Document(inv cashbill.Invoice) (string, error) {
	var b strings.Builder
	if err := htmlTemplates.ExecuteTemplate(&b, "document.html", s.view(inv, documentDate)); err != nil {
		return "", fmt.Errorf("cannot render invoice %q: %w", inv.Number(), err)
	}
	return b.String(), nil
}

// DocumentFilename returns the file name the printable document is saved as.
func DocumentFilename(inv cashbill.Invoice) string {
	return "Invoice_" + safeName(inv.Number()) + ".html"
}

// PDFFilename returns the file name the PDF document is saved as.
func PDFFilename(inv cashbill.Invoice) string {
	return "Invoice_" + safeName(inv.Number()) + ".pdf"
}

// safeName replaces characters that cannot appear in a file name.
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		if r < ' ' || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, s)
}

// ShareURL returns the link that opens WhatsApp Web with text ready to send.
func ShareURL(text string) string {
	// QueryEscape encodes spaces as '+', WhatsApp expects %20.
	return "https://web.whatsapp.com/send?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
