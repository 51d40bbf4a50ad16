package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fintab/statement-recovery/internal/models"
)

const sheetName = "Transactions"

// columnHeaders is the export header row, in the statement's visual order.
var columnHeaders = []interface{}{
	"Date", "Payment Type", "Details 1", "Details 2", "Paid Out", "Paid In", "Balance",
}

// WriteXLSX writes the records as an XLSX workbook with a single
// Transactions sheet.
func WriteXLSX(out io.Writer, records []models.TransactionRecord) error {
	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write XLSX: %w", err)
	}
	return nil
}

// WriteXLSXFile writes the records to an XLSX file at the given path.
func WriteXLSXFile(path string, records []models.TransactionRecord) error {
	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return nil
}

func buildWorkbook(records []models.TransactionRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set up sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &columnHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := []interface{}{r.Date, r.PaymentType, r.Details1, r.Details2, r.PaidOut, r.PaidIn, r.Balance}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
