package renderer

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/etnz/cashbill"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

// issuedAt is 01 Mar 2024 15:45 in India.
var issuedAt = time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)

func sampleInvoice(t *testing.T) cashbill.Invoice {
	t.Helper()
	d := cashbill.NewDraft()
	d.UpdateHeader("B100", "Asha", "9999999999")
	if _, err := d.AddItem("Pen", 3, cashbill.M(10.5)); err != nil {
		t.Fatal(err)
	}
	inv, err := d.Finalize(issuedAt)
	if err != nil {
		t.Fatal(err)
	}
	return inv
}

func TestPlainText(t *testing.T) {
	want := `Thank you for shopping at E-COMMERCE!
Bill No.: B100
Date: 01 Mar 2024

Hi Asha, here is your invoice:

Pen (Qty: 3) - ₹31.50
--------------------
Total Amount: ₹31.50

Have a great day!`

	got := DefaultShop.PlainText(sampleInvoice(t))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PlainText() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainText_ItemLinesInOrder(t *testing.T) {
	items := []cashbill.LineItem{}
	for _, it := range []struct {
		name  string
		qty   int
		price float64
	}{
		{"Pen", 3, 10.5},
		{"Notebook", 2, 45},
		{"Eraser", 1, 5},
	} {
		item, err := cashbill.NewLineItem(it.name, it.qty, cashbill.M(it.price))
		if err != nil {
			t.Fatal(err)
		}
		items = append(items, item)
	}
	inv := cashbill.NewInvoice("B7", issuedAt, "Ravi", "1", items)

	var lines []string
	for _, line := range strings.Split(Shop{Name: "Corner Store"}.PlainText(inv), "\n") {
		if strings.Contains(line, "(Qty: ") {
			lines = append(lines, line)
		}
	}
	want := []string{
		"Pen (Qty: 3) - ₹31.50",
		"Notebook (Qty: 2) - ₹90.00",
		"Eraser (Qty: 1) - ₹5.00",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("item lines mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument(t *testing.T) {
	doc, err := DefaultShop.Document(sampleInvoice(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<title>Invoice - B100</title>",
		"CASH BILL",
		"<h1 class='store-name'>E-COMMERCE</h1>",
		"Date: <span style='border-bottom: 1px dotted #000; padding: 0 10px;'>1/3/2024</span>",
		"<tr><td>1</td><td>Pen</td><td>3</td><td>10.50</td><td>31.50</td></tr>",
		"<td colspan='4' style='text-align:right;'>TOTAL</td><td>₹31.50</td>",
		"NO RETURN &amp; NO EXCHANGE",
		"For E-COMMERCE",
		"Authorized Signatory",
		"Thank You Visit Again",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Document() does not contain %q", want)
		}
	}
	for _, external := range []string{"<link", "<script", "src="} {
		if strings.Contains(doc, external) {
			t.Errorf("Document() references external resource %q", external)
		}
	}
}

func TestDocument_EscapesUserText(t *testing.T) {
	item, err := cashbill.NewLineItem("<b>Pen</b>", 1, cashbill.M(1))
	if err != nil {
		t.Fatal(err)
	}
	inv := cashbill.NewInvoice("B1", issuedAt, "<script>alert(1)</script>", "1", []cashbill.LineItem{item})

	doc, err := DefaultShop.Document(inv)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "<script>") || strings.Contains(doc, "<b>Pen</b>") {
		t.Errorf("Document() contains unescaped user text:\n%s", doc)
	}
	if !strings.Contains(doc, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Errorf("Document() does not contain the escaped customer name")
	}
}

func TestDocumentFilename(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"B100", "Invoice_B100.html"},
		{"2024/03/7", "Invoice_2024_03_7.html"},
		{`..\x`, "Invoice_.._x.html"},
	}
	for _, tt := range tests {
		inv := cashbill.NewInvoice(tt.number, issuedAt, "Asha", "1", nil)
		if got := DocumentFilename(inv); got != tt.want {
			t.Errorf("DocumentFilename(%q) = %q, want %q", tt.number, got, tt.want)
		}
	}
}

func TestShareURL(t *testing.T) {
	text := "Hi Asha, here is your invoice:\nPen & Ink - ₹31.50"
	got := ShareURL(text)

	prefix := "https://web.whatsapp.com/send?text="
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("ShareURL() = %q, want prefix %q", got, prefix)
	}
	encoded := strings.TrimPrefix(got, prefix)
	if strings.ContainsAny(encoded, " +&\n") {
		t.Errorf("ShareURL() is not fully encoded: %q", encoded)
	}
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != text {
		t.Errorf("decoded text = %q, want %q", decoded, text)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	a := cashbill.NewInvoice("B2", issuedAt.Add(time.Hour), "Ravi | Sons", "1", nil)
	b := sampleInvoice(t)

	got := HistoryMarkdown([]cashbill.Invoice{a, b})
	want := `# Invoice History

| Bill No. | Date | Customer | Total |
|---|---|---|---:|
| B2 | 1/3/2024, 4:45:00 pm | Ravi \| Sons | ₹0.00 |
| B100 | 1/3/2024, 3:45:00 pm | Asha | ₹31.50 |

`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HistoryMarkdown() mismatch (-want +got):\n%s", diff)
	}

	if got := HistoryMarkdown(nil); !strings.Contains(got, "No invoices yet.") {
		t.Errorf("HistoryMarkdown(nil) = %q, want the empty message", got)
	}
}

func TestHistoryHTML(t *testing.T) {
	inv := cashbill.NewInvoice("B1", issuedAt, "<img src=x>", "1", nil)
	got, err := HistoryHTML([]cashbill.Invoice{inv, sampleInvoice(t)})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<table>", "<td>B100</td>", "<td>Asha</td>", "&lt;img src=x&gt;"} {
		if !strings.Contains(got, want) {
			t.Errorf("HistoryHTML() does not contain %q", want)
		}
	}
	if strings.Contains(got, "<img") {
		t.Errorf("HistoryHTML() contains raw user HTML")
	}
}

func TestPDF(t *testing.T) {
	var b bytes.Buffer
	if err := DefaultShop.PDF(&b, sampleInvoice(t)); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b.Bytes(), []byte("%PDF-")) {
		t.Errorf("PDF() output does not start with a PDF header")
	}
}

func TestWorkbook(t *testing.T) {
	second := cashbill.NewInvoice("B101", issuedAt, "Ravi", "1", nil)

	var b bytes.Buffer
	if err := Workbook(&b, []cashbill.Invoice{sampleInvoice(t), second}); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&b)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{"Invoices", "Items"}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}

	invoices, err := f.GetRows("Invoices")
	if err != nil {
		t.Fatal(err)
	}
	if len(invoices) != 3 {
		t.Fatalf("Invoices sheet has %d rows, want 3", len(invoices))
	}
	if got := invoices[1][0] + " " + invoices[1][2]; got != "B100 Asha" {
		t.Errorf("first invoice row = %q, want %q", got, "B100 Asha")
	}
	if got := invoices[2][0]; got != "B101" {
		t.Errorf("second invoice number = %q, want B101", got)
	}

	items, err := f.GetRows("Items")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("Items sheet has %d rows, want 2", len(items))
	}
	if got := items[1][:4]; !cmp.Equal(got, []string{"B100", "1", "Pen", "3"}) {
		t.Errorf("item row = %v, want [B100 1 Pen 3]", got)
	}
}
