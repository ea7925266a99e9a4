// Package export renders the full transaction log as a spreadsheet, one
// row per transaction with a fixed column set.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"stocktrack"
)

// ErrNoData means there is nothing to export.
var ErrNoData = errors.New("no data to export")

// SheetName is the single worksheet holding the rows.
const SheetName = "Inventory Data"

var columns = []string{
	"Type", "Item", "Quantity", "Unit Price", "Total Price",
	"Supplier", "Received By", "Taken By", "Reason", "Note",
	"Date", "Time",
}

// FileName returns the default export file name for the given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("Inventory_Export_%s.xlsx", now.Format("2006-01-02"))
}

// Workbook builds the spreadsheet in memory. Absent fields render as empty
// cells; prices only appear on stock-in rows.
func Workbook(log []stocktrack.Transaction) (*excelize.File, error) {
	if len(log) == 0 {
		return nil, ErrNoData
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, tx := range log {
		if err := setRow(f, i+2, row(tx)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteFile builds the workbook and saves it at path.
func WriteFile(log []stocktrack.Transaction, path string) error {
	f, err := Workbook(log)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func row(tx stocktrack.Transaction) []interface{} {
	kind := "Stock Out"
	if tx.Kind == stocktrack.KindIn {
		kind = "Stock In"
	}
	return []interface{}{
		kind,
		tx.Item,
		tx.Quantity,
		blankZero(tx.UnitPrice),
		blankZero(tx.TotalPrice),
		tx.Supplier,
		tx.ReceivedBy,
		tx.Person,
		tx.Reason,
		tx.Note,
		tx.Date,
		tx.Time,
	}
}

func blankZero(v float64) interface{} {
	if v == 0 {
		return ""
	}
	return v
}

func setRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SheetName, cell, &values)
}
