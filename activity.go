package stocktrack

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"stocktrack/kv"
)

// KeyActivities holds the append-only activity log.
const KeyActivities = "adminActivities"

// Activity categories.
const (
	ActivityStockIn  = "stock-in"
	ActivityStockOut = "stock-out"
	ActivityDelete   = "delete"
)

// Activity is one audit entry: who did what, when. The core only ever
// appends; nothing reads these back programmatically.
type Activity struct {
	Action    string    `msgpack:"action"`
	Username  string    `msgpack:"username"`
	Category  string    `msgpack:"type"`
	Timestamp time.Time `msgpack:"timestamp"`
}

// ActivityLog appends audit entries to the kv store.
type ActivityLog struct {
	kv kv.Store
}

func NewActivityLog(backend kv.Store) *ActivityLog {
	return &ActivityLog{kv: backend}
}

// Append records one activity. An unreadable existing list is treated as
// empty rather than blocking the append.
func (a *ActivityLog) Append(action, username, category string) error {
	raw, err := a.kv.Get(KeyActivities)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyActivities, err)
	}
	var entries []Activity
	if len(raw) > 0 {
		if err := msgpack.Unmarshal(raw, &entries); err != nil {
			entries = nil
		}
	}
	entries = append(entries, Activity{
		Action:    action,
		Username:  username,
		Category:  category,
		Timestamp: time.Now(),
	})
	out, err := msgpack.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyActivities, err)
	}
	if err := a.kv.Set(KeyActivities, out); err != nil {
		return fmt.Errorf("write %s: %w", KeyActivities, err)
	}
	return nil
}
