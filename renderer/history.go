package renderer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"

	"github.com/etnz/cashbill"
	"github.com/etnz/cashbill/date"
	"github.com/samber/lo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type historyRow struct {
	Number       string
	Date         string
	CustomerName string
	TotalAmount  string
}

// markdownEscaper protects user text inside a markdown table cell.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"\n", " ",
	"\r", " ",
)

// HistoryMarkdown renders invoices as a markdown table, in the given order.
func HistoryMarkdown(invoices []cashbill.Invoice) string {
	rows := lo.Map(invoices, func(inv cashbill.Invoice, _ int) historyRow {
		return historyRow{
			Number:       markdownEscaper.Replace(inv.Number()),
			Date:         inv.Date().In(date.Location).Format(historyDatetime),
			CustomerName: markdownEscaper.Replace(inv.CustomerName()),
			TotalAmount:  inv.TotalAmount().String(),
		}
	})
	var b strings.Builder
	if err := textTemplates.ExecuteTemplate(&b, "history.md", rows); err != nil {
		return fmt.Sprintf("error executing template %q: %v", "history.md", err)
	}
	return b.String()
}

// HistoryHTML renders the history table as a standalone HTML page.
func HistoryHTML(invoices []cashbill.Invoice) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(HistoryMarkdown(invoices)), &body); err != nil {
		return "", fmt.Errorf("cannot convert history to HTML: %w", err)
	}
	var b strings.Builder
	// goldmark omits raw HTML, the body is safe to embed as is.
	if err := htmlTemplates.ExecuteTemplate(&b, "history.html", htmltemplate.HTML(body.String())); err != nil {
		return "", fmt.Errorf("cannot render history: %w", err)
	}
	return b.String(), nil
}
