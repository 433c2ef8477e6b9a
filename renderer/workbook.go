package renderer

import (
	"io"

	"github.com/etnz/cashbill"
	"github.com/etnz/cashbill/date"
	"github.com/xuri/excelize/v2"
)

const (
	invoicesSheet = "Invoices"
	itemsSheet    = "Items"
)

// amountFormat is the builtin "#,##0.00" number format.
const amountFormat = 4

// Workbook writes invoices as an XLSX workbook: one row per invoice in the
// "Invoices" sheet, one row per line item in the "Items" sheet.
func Workbook(w io.Writer, invoices []cashbill.Invoice) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", invoicesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(invoicesSheet, "A1", &[]any{"Bill No.", "Date", "Customer", "Mobile", "Items", "Total"}); err != nil {
		return err
	}
	if err := f.SetSheetRow(itemsSheet, "A1", &[]any{"Bill No.", "Sl. No.", "Particulars", "Qty.", "Rate", "Amount"}); err != nil {
		return err
	}

	row := 2
	for i, inv := range invoices {
		items := inv.Items()
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			inv.Number(),
			inv.Date().In(date.Location),
			inv.CustomerName(),
			inv.MobileNumber(),
			len(items),
			amountValue(inv.TotalAmount()),
		}
		if err := f.SetSheetRow(invoicesSheet, cell, &values); err != nil {
			return err
		}

		for j, it := range items {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []any{inv.Number(), j + 1, it.Name, it.Quantity, amountValue(it.UnitPrice), amountValue(it.Total)}
			if err := f.SetSheetRow(itemsSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	if len(invoices) > 0 {
		last, err := excelize.CoordinatesToCellName(6, len(invoices)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(invoicesSheet, "F2", last, amount); err != nil {
			return err
		}
	}
	if row > 2 {
		last, err := excelize.CoordinatesToCellName(6, row-1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(itemsSheet, "E2", last, amount); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func amountValue(m cashbill.Money) float64 {
	return m.Round().Decimal().InexactFloat64()
}
