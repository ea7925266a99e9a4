package stocktrack

import "strings"

// NotFound is returned by the matchers when no log entry qualifies.
const NotFound = -1

// LocateID resolves a transaction identifier to its position in the
// canonical log. This is the authoritative lookup: IDs are immutable and
// unique, so the result is never ambiguous.
func LocateID(log []Transaction, id string) int {
	if id == "" {
		return NotFound
	}
	for i := range log {
		if log[i].ID == id {
			return i
		}
	}
	return NotFound
}

// Locate resolves a field-only row (as shown in a filtered view) back to
// the first log entry matching on kind, item, quantity, date and time.
// Item comparison is case-insensitive for "in" records and case-sensitive
// for "out" records, mirroring how the two entry paths store the key.
//
// This is a heuristic: two field-identical records are indistinguishable
// and the first one wins. Callers that can hold an ID should use LocateID.
func Locate(log []Transaction, candidate Transaction) int {
	for i := range log {
		tx := log[i]
		if tx.Kind != candidate.Kind {
			continue
		}
		switch tx.Kind {
		case KindIn:
			if !strings.EqualFold(tx.Item, candidate.Item) {
				continue
			}
		case KindOut:
			if tx.Item != candidate.Item {
				continue
			}
		default:
			continue
		}
		if tx.Quantity == candidate.Quantity && tx.Date == candidate.Date && tx.Time == candidate.Time {
			return i
		}
	}
	return NotFound
}
