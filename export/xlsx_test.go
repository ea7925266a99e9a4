package export_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack"
	"stocktrack/export"
)

func TestWorkbookEmpty(t *testing.T) {
	_, err := export.Workbook(nil)
	require.ErrorIs(t, err, export.ErrNoData)
}

func TestWorkbookRows(t *testing.T) {
	log := []stocktrack.Transaction{
		{
			Kind: stocktrack.KindIn, Item: "bolt", DisplayItem: "Bolt",
			Quantity: 10, UnitPrice: 2.5, TotalPrice: 25,
			Supplier: "S", ReceivedBy: "R", Note: "n",
			Date: "8/28/2026", Time: "9:30 AM",
		},
		{
			Kind: stocktrack.KindOut, Item: "bolt", Quantity: 3,
			Person: "P", Date: "8/28/2026", Time: "10:00 AM",
		},
	}
	f, err := export.Workbook(log)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Type", "Item", "Quantity", "Unit Price", "Total Price",
		"Supplier", "Received By", "Taken By", "Reason", "Note",
		"Date", "Time",
	}, rows[0])

	assert.Equal(t, "Stock In", rows[1][0])
	assert.Equal(t, "bolt", rows[1][1])
	assert.Equal(t, "10", rows[1][2])
	assert.Equal(t, "2.5", rows[1][3])
	assert.Equal(t, "S", rows[1][5])

	out := rows[2]
	assert.Equal(t, "Stock Out", out[0])
	assert.Equal(t, "3", out[2])
	assert.Equal(t, "", out[3], "absent price renders empty")
	assert.Equal(t, "P", out[7])
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "Inventory_Export_2026-08-28.xlsx", export.FileName(now))
}
