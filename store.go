package stocktrack

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"stocktrack/kv"
)

const (
	// KeyStockData holds the full serialized transaction log.
	KeyStockData = "stockData"
	// KeyStockDataUpdated holds a unix-millisecond marker bumped on every
	// save, so other processes can detect that a reload is due.
	KeyStockDataUpdated = "stockDataUpdated"
)

// Store owns the canonical transaction log: one msgpack blob in the kv
// store, rewritten wholesale on every save. Writes are last-write-wins
// across processes; there is no cross-process locking, so two concurrent
// load/mutate/save sequences race and the later save silently discards the
// earlier one. Acceptable under the single-active-editor assumption.
type Store struct {
	kv  kv.Store
	log *zap.Logger

	mu          sync.Mutex
	subscribers []func()
}

func NewStore(backend kv.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: backend, log: logger}
}

// LoadAll returns the full log in on-disk order. An absent or unparsable
// blob yields an empty log: reads never fail hard. Records persisted
// before identifiers existed are assigned one on the way out.
func (s *Store) LoadAll() []Transaction {
	log, err := s.LoadAllStrict()
	if err != nil {
		s.log.Warn("stock data unreadable, treating as empty", zap.Error(err))
		return nil
	}
	return log
}

// LoadAllStrict is LoadAll that surfaces a decode failure instead of
// swallowing it, for callers that want to warn about corrupt data rather
// than silently discard it.
func (s *Store) LoadAllStrict() ([]Transaction, error) {
	raw, err := s.kv.Get(KeyStockData)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyStockData, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var log []Transaction
	if err := msgpack.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyStockData, err)
	}
	assigned := 0
	for i := range log {
		if log[i].ID == "" {
			log[i].ID = GenerateID()
			assigned++
		}
	}
	if assigned > 0 {
		// Write the minted IDs back so they survive the next load. A plain
		// blob rewrite, not SaveAll: the log's content is unchanged, so no
		// change notification is due.
		if out, err := msgpack.Marshal(log); err == nil {
			if err := s.kv.Set(KeyStockData, out); err != nil {
				s.log.Warn("id migration not persisted", zap.Error(err))
			} else {
				s.log.Info("assigned ids to legacy records", zap.Int("count", assigned))
			}
		}
	}
	return log, nil
}

// SaveAll overwrites the persisted log, bumps the cross-process change
// marker, and fires every local subscriber. Callers load, mutate a copy,
// then save; there is no partial update primitive.
func (s *Store) SaveAll(log []Transaction) error {
	raw, err := msgpack.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyStockData, err)
	}
	if err := s.kv.Set(KeyStockData, raw); err != nil {
		return fmt.Errorf("write %s: %w", KeyStockData, err)
	}
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := s.kv.Set(KeyStockDataUpdated, []byte(stamp)); err != nil {
		s.log.Warn("change marker not written", zap.Error(err))
	}
	s.notify()
	return nil
}

// Subscribe registers a local change listener. Delivery is fire-and-forget
// after each successful save; listeners reload and re-render on receipt.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// LastUpdated reads the cross-process change marker. The zero time means
// no save has been observed yet.
func (s *Store) LastUpdated() time.Time {
	raw, err := s.kv.Get(KeyStockDataUpdated)
	if err != nil || len(raw) == 0 {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
