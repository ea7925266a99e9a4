package stocktrack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack"
)

func TestFilter(t *testing.T) {
	log := []stocktrack.Transaction{
		{Kind: stocktrack.KindIn, Item: "bolt", Quantity: 10, Supplier: "Acme", ReceivedBy: "R", Date: "8/1/2026", Time: "9:00 AM"},
		{Kind: stocktrack.KindIn, Item: "nut", Quantity: 4, Supplier: "Other", ReceivedBy: "R", Date: "8/2/2026", Time: "9:00 AM"},
		{Kind: stocktrack.KindOut, Item: "bolt", Quantity: 2, Person: "Carol", Reason: "repair", Date: "8/3/2026", Time: "9:00 AM"},
	}

	tests := []struct {
		name    string
		kind    string
		keyword string
		want    int
	}{
		{"kind only", stocktrack.KindIn, "", 2},
		{"keyword on supplier", stocktrack.KindIn, "acme", 1},
		{"keyword is case-insensitive", stocktrack.KindIn, "ACME", 1},
		{"keyword on reason", stocktrack.KindOut, "repair", 1},
		{"keyword on date", stocktrack.KindIn, "8/2/2026", 1},
		{"no hits", stocktrack.KindOut, "acme", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stocktrack.Filter(log, tt.kind, tt.keyword)
			assert.Len(t, got, tt.want)
			for _, tx := range got {
				assert.Equal(t, tt.kind, tx.Kind)
			}
		})
	}
}

func TestKnownItems(t *testing.T) {
	log := []stocktrack.Transaction{
		{Kind: stocktrack.KindIn, Item: "nut", Quantity: 4},
		{Kind: stocktrack.KindIn, Item: "bolt", Quantity: 10},
		{Kind: stocktrack.KindOut, Item: "bolt", Quantity: 3},
		{Kind: stocktrack.KindOut, Item: "screw", Quantity: 1},
	}
	items := stocktrack.KnownItems(log)
	require.Len(t, items, 2, "only items with stock-in records are known")
	assert.Equal(t, stocktrack.ItemStock{Item: "bolt", Available: 7}, items[0])
	assert.Equal(t, stocktrack.ItemStock{Item: "nut", Available: 4}, items[1])
}
