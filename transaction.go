package stocktrack

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindIn  = "in"
	KindOut = "out"
)

// Transaction is a single stock movement. Kind discriminates the two
// variants: "in" records carry price/supplier/receiver fields, "out"
// records carry person/reason. Item holds the canonical key (lowercased
// for "in" records); DisplayItem keeps the original casing for views.
type Transaction struct {
	ID   string `msgpack:"id,omitempty"`
	Kind string `msgpack:"type"`

	Item        string  `msgpack:"item"`
	DisplayItem string  `msgpack:"display_item,omitempty"`
	Quantity    float64 `msgpack:"qty"`

	UnitPrice  float64 `msgpack:"price,omitempty"`
	TotalPrice float64 `msgpack:"total_price,omitempty"`
	Supplier   string  `msgpack:"supplier,omitempty"`
	ReceivedBy string  `msgpack:"receiver,omitempty"`
	Note       string  `msgpack:"note,omitempty"`

	Person string `msgpack:"person,omitempty"`
	Reason string `msgpack:"reason,omitempty"`

	// Timestamp is the canonical instant; Date and Time are the split
	// display strings derived from it at creation. Ordering always uses
	// Timestamp, never the strings.
	Timestamp time.Time `msgpack:"timestamp"`
	Date      string    `msgpack:"date"`
	Time      string    `msgpack:"time"`
}

// Name returns the string a view should show for the item.
func (t Transaction) Name() string {
	if t.DisplayItem != "" {
		return t.DisplayItem
	}
	return t.Item
}

// GenerateID returns a fresh opaque transaction identifier.
func GenerateID() string {
	return uuid.New().String()
}

// Stamp fills Timestamp, Date and Time from now.
func (t *Transaction) Stamp(now time.Time) {
	t.Timestamp = now
	t.Date = now.Format("1/2/2006")
	t.Time = now.Format("3:04 PM")
}
