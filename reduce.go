package stocktrack

import "math"

// StockLevels reduces a log to the net quantity per item key in a single
// pass: "in" quantities add, "out" quantities subtract. Keys are the raw
// Item strings as stored; no normalization happens here.
func StockLevels(log []Transaction) map[string]float64 {
	levels := make(map[string]float64)
	for _, tx := range log {
		qty := numeric(tx.Quantity)
		switch tx.Kind {
		case KindIn:
			levels[tx.Item] += qty
		case KindOut:
			levels[tx.Item] -= qty
		}
	}
	return levels
}

// ItemOrder returns the distinct item keys in first-appearance order.
// Charts and tie-breaks need a stable ordering that a map cannot give.
func ItemOrder(log []Transaction) []string {
	seen := make(map[string]bool)
	var order []string
	for _, tx := range log {
		if tx.Kind != KindIn && tx.Kind != KindOut {
			continue
		}
		if !seen[tx.Item] {
			seen[tx.Item] = true
			order = append(order, tx.Item)
		}
	}
	return order
}

// Totals sums all incoming and outgoing quantities.
func Totals(log []Transaction) (totalIn, totalOut float64) {
	for _, tx := range log {
		qty := numeric(tx.Quantity)
		switch tx.Kind {
		case KindIn:
			totalIn += qty
		case KindOut:
			totalOut += qty
		}
	}
	return totalIn, totalOut
}

// MostFrequentItem returns the item key with the most transactions of
// either kind. Ties go to the item that first appears in the log, not the
// one that first reaches the winning count; an empty log yields "".
func MostFrequentItem(log []Transaction) string {
	counts := make(map[string]int)
	seen := make(map[string]bool)
	var order []string
	for _, tx := range log {
		counts[tx.Item]++
		if !seen[tx.Item] {
			seen[tx.Item] = true
			order = append(order, tx.Item)
		}
	}
	var best string
	bestCount := 0
	for _, item := range order {
		if counts[item] > bestCount {
			best = item
			bestCount = counts[item]
		}
	}
	return best
}

// AvailableStock returns the current net quantity for one item.
func AvailableStock(log []Transaction, item string) float64 {
	total := 0.0
	for _, tx := range log {
		if tx.Item != item {
			continue
		}
		switch tx.Kind {
		case KindIn:
			total += numeric(tx.Quantity)
		case KindOut:
			total -= numeric(tx.Quantity)
		}
	}
	return total
}

func numeric(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
