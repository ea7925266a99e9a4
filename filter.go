package stocktrack

import (
	"fmt"
	"sort"
	"strings"
)

// Filter returns the records of one kind whose display fields contain the
// keyword, case-insensitively. An empty keyword keeps every record of the
// kind. The result is a view: edit and delete must resolve entries back to
// the canonical log by ID (or through Locate for field-only rows).
func Filter(log []Transaction, kind, keyword string) []Transaction {
	keyword = strings.ToLower(keyword)
	var out []Transaction
	for _, tx := range log {
		if tx.Kind != kind {
			continue
		}
		if keyword == "" || strings.Contains(searchText(tx), keyword) {
			out = append(out, tx)
		}
	}
	return out
}

func searchText(tx Transaction) string {
	var s string
	switch tx.Kind {
	case KindIn:
		s = fmt.Sprintf("%s %g %s %s %s %s %s", tx.Item, tx.Quantity, tx.Supplier, tx.ReceivedBy, tx.Note, tx.Date, tx.Time)
	case KindOut:
		s = fmt.Sprintf("%s %g %s %s %s %s", tx.Item, tx.Quantity, tx.Person, tx.Reason, tx.Date, tx.Time)
	}
	return strings.ToLower(s)
}

// ItemStock pairs an item key with its current available level, for the
// stock-out item picker.
type ItemStock struct {
	Item      string
	Available float64
}

// KnownItems lists the distinct item keys that ever appeared on a stock-in
// record, sorted, each with its present stock level.
func KnownItems(log []Transaction) []ItemStock {
	seen := make(map[string]bool)
	var names []string
	for _, tx := range log {
		if tx.Kind == KindIn && !seen[tx.Item] {
			seen[tx.Item] = true
			names = append(names, tx.Item)
		}
	}
	sort.Strings(names)
	levels := StockLevels(log)
	out := make([]ItemStock, 0, len(names))
	for _, name := range names {
		out = append(out, ItemStock{Item: name, Available: levels[name]})
	}
	return out
}
