// Package dashboard reduces a transaction log snapshot into the figures
// the overview screen shows: totals, per-item levels, recent movements and
// the bar-chart series. Everything here is derived; the package never
// mutates the log.
package dashboard

import (
	"sort"

	"stocktrack"
)

// RecentLimit caps the recent-movement tables.
const RecentLimit = 5

// Level is one row of the stock-level table.
type Level struct {
	Item     string
	Quantity float64
}

// Summary is a full dashboard snapshot.
type Summary struct {
	TotalIn      float64
	TotalOut     float64
	MostFrequent string
	Levels       []Level
	RecentIn     []stocktrack.Transaction
	RecentOut    []stocktrack.Transaction
}

// Build computes a Summary from one log snapshot. Levels keep the items'
// first-appearance order; recent tables are sorted newest first by the
// canonical timestamp and capped at RecentLimit.
func Build(log []stocktrack.Transaction) Summary {
	totalIn, totalOut := stocktrack.Totals(log)
	levels := stocktrack.StockLevels(log)

	var ordered []Level
	for _, item := range stocktrack.ItemOrder(log) {
		ordered = append(ordered, Level{Item: item, Quantity: levels[item]})
	}

	return Summary{
		TotalIn:      totalIn,
		TotalOut:     totalOut,
		MostFrequent: stocktrack.MostFrequentItem(log),
		Levels:       ordered,
		RecentIn:     recent(log, stocktrack.KindIn),
		RecentOut:    recent(log, stocktrack.KindOut),
	}
}

func recent(log []stocktrack.Transaction, kind string) []stocktrack.Transaction {
	entries := stocktrack.Filter(log, kind, "")
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if len(entries) > RecentLimit {
		entries = entries[:RecentLimit]
	}
	return entries
}

// ChartData feeds the bar-chart collaborator with parallel label/value
// slices. Both are nil when there are no items, which tells the chart to
// hide itself.
func ChartData(s Summary) (labels []string, values []float64) {
	if len(s.Levels) == 0 {
		return nil, nil
	}
	for _, lvl := range s.Levels {
		labels = append(labels, lvl.Item)
		values = append(values, lvl.Quantity)
	}
	return labels, values
}
