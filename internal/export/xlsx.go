package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	sheetRecords = "Subscriptions"
	sheetSummary = "Summary"
)

func writeXLSX(w io.Writer, snap Snapshot) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetRecords); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetRecords, cell, c); err != nil {
			return err
		}
	}

	for r, sub := range snap.Records {
		row := r + 2
		values := snap.row(sub)
		// Numeric columns are written as numbers so spreadsheets can sum them.
		values[4] = sub.Amount.InexactFloat64()
		values[5] = snap.Summary.Local(sub.ID).InexactFloat64()
		values[6] = sub.BillingDay
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheetRecords, cell, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Subscriptions", len(snap.Records)},
		{"Conversion rate", snap.Rate.InexactFloat64()},
		{"Monthly total", snap.Summary.Total.InexactFloat64()},
		{"Annual estimate", snap.Summary.Annualized.InexactFloat64()},
		{"Exported at", snap.Now.Format("2006-01-02 15:04")},
	}
	for i, r := range summaryRows {
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", i+1), &r); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
