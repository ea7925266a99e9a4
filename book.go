package stocktrack

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultLowStockThreshold is the level below which a committed stock out
// carries an advisory warning.
const DefaultLowStockThreshold = 5

// InFields is the input of a stock-in mutation.
type InFields struct {
	Item       string
	Quantity   float64
	UnitPrice  float64
	Supplier   string
	ReceivedBy string
	Note       string
}

// OutFields is the input of a stock-out mutation.
type OutFields struct {
	Item     string
	Quantity float64
	Person   string
	Reason   string
}

// OutResult reports a committed stock out. LowStock is advisory: the
// mutation committed, the caller should just warn.
type OutResult struct {
	Tx        Transaction
	Remaining float64
	LowStock  bool
}

// Book runs the mutation workflows: validate, gate on the session, mutate
// the canonical log through the store, and append activity records.
// Mutations in one process are serialized by a mutex; cross-process writes
// stay last-write-wins (see Store).
type Book struct {
	store    *Store
	session  SessionSource
	activity *ActivityLog
	log      *zap.Logger
	lowStock float64

	mu sync.Mutex
}

func NewBook(store *Store, session SessionSource, activity *ActivityLog, logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Book{
		store:    store,
		session:  session,
		activity: activity,
		log:      logger,
		lowStock: DefaultLowStockThreshold,
	}
}

// SetLowStockThreshold overrides the advisory low-stock level.
func (b *Book) SetLowStockThreshold(v float64) {
	if v > 0 {
		b.lowStock = v
	}
}

// AddIn records a stock receipt. Admin only. The item key is lowercased
// for canonical storage; the typed casing survives in DisplayItem.
func (b *Book) AddIn(f InFields) (Transaction, error) {
	user, err := b.requireAdmin()
	if err != nil {
		return Transaction{}, err
	}
	tx, err := buildIn(f)
	if err != nil {
		return Transaction{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	log := b.store.LoadAll()
	log = append(log, tx)
	if err := b.store.SaveAll(log); err != nil {
		return Transaction{}, err
	}

	b.logActivity(fmt.Sprintf("%g %s from %s", tx.Quantity, tx.DisplayItem, tx.Supplier), user.Username, ActivityStockIn)
	b.log.Info("stock in recorded",
		zap.String("item", tx.Item),
		zap.Float64("qty", tx.Quantity),
		zap.String("supplier", tx.Supplier))
	return tx, nil
}

// AddOut records a stock withdrawal. Any authenticated user. Rejected when
// the requested quantity exceeds the available level; a committed result
// below the low-stock threshold carries an advisory warning.
func (b *Book) AddOut(f OutFields) (OutResult, error) {
	user, err := b.requireUser()
	if err != nil {
		return OutResult{}, err
	}
	tx, err := buildOut(f)
	if err != nil {
		return OutResult{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	log := b.store.LoadAll()
	available := AvailableStock(log, tx.Item)
	if tx.Quantity > available {
		return OutResult{}, &InsufficientStockError{Item: tx.Item, Requested: tx.Quantity, Available: available}
	}
	log = append(log, tx)
	if err := b.store.SaveAll(log); err != nil {
		return OutResult{}, err
	}

	action := fmt.Sprintf("%g %s to %s", tx.Quantity, tx.Item, tx.Person)
	if tx.Reason != "" {
		action += " (" + tx.Reason + ")"
	}
	b.logActivity(action, user.Username, ActivityStockOut)

	remaining := available - tx.Quantity
	b.log.Info("stock out recorded",
		zap.String("item", tx.Item),
		zap.Float64("qty", tx.Quantity),
		zap.Float64("remaining", remaining))
	return OutResult{Tx: tx, Remaining: remaining, LowStock: remaining < b.lowStock}, nil
}

// EditIn replaces the fields of an existing stock-in record in place. The
// replacement passes the full AddIn validation; the record keeps its ID
// and position but is re-stamped. Edits emit no activity record.
func (b *Book) EditIn(id string, f InFields) (Transaction, error) {
	if _, err := b.requireAdmin(); err != nil {
		return Transaction{}, err
	}
	tx, err := buildIn(f)
	if err != nil {
		return Transaction{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	log := b.store.LoadAll()
	pos := LocateID(log, id)
	if pos == NotFound {
		return Transaction{}, ErrNotFound
	}
	if log[pos].Kind != KindIn {
		return Transaction{}, ErrKindMismatch
	}
	tx.ID = id
	log[pos] = tx
	if err := b.store.SaveAll(log); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// EditOut replaces the fields of an existing stock-out record in place.
// The availability check excludes the record being edited, so shrinking or
// re-pointing a withdrawal cannot be blocked by its own old quantity.
func (b *Book) EditOut(id string, f OutFields) (Transaction, error) {
	if _, err := b.requireUser(); err != nil {
		return Transaction{}, err
	}
	tx, err := buildOut(f)
	if err != nil {
		return Transaction{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	log := b.store.LoadAll()
	pos := LocateID(log, id)
	if pos == NotFound {
		return Transaction{}, ErrNotFound
	}
	if log[pos].Kind != KindOut {
		return Transaction{}, ErrKindMismatch
	}
	rest := make([]Transaction, 0, len(log)-1)
	rest = append(rest, log[:pos]...)
	rest = append(rest, log[pos+1:]...)
	available := AvailableStock(rest, tx.Item)
	if tx.Quantity > available {
		return Transaction{}, &InsufficientStockError{Item: tx.Item, Requested: tx.Quantity, Available: available}
	}
	tx.ID = id
	log[pos] = tx
	if err := b.store.SaveAll(log); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Delete removes the record with the given ID. Any authenticated user.
// The record must exist and match the expected kind.
func (b *Book) Delete(id, kind string) (Transaction, error) {
	user, err := b.requireUser()
	if err != nil {
		return Transaction{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	log := b.store.LoadAll()
	pos := LocateID(log, id)
	if pos == NotFound {
		return Transaction{}, ErrNotFound
	}
	removed := log[pos]
	if removed.Kind != kind {
		return Transaction{}, ErrKindMismatch
	}
	log = append(log[:pos], log[pos+1:]...)
	if err := b.store.SaveAll(log); err != nil {
		return Transaction{}, err
	}

	label := "stock out"
	if removed.Kind == KindIn {
		label = "stock in"
	}
	b.logActivity(fmt.Sprintf("deleted %s: %g %s", label, removed.Quantity, removed.Name()), user.Username, ActivityDelete)
	b.log.Info("transaction deleted", zap.String("id", removed.ID), zap.String("kind", removed.Kind))
	return removed, nil
}

// DeleteMatching resolves a field-only row through the legacy matcher and
// deletes it. Ambiguous on field-identical duplicates; prefer Delete.
func (b *Book) DeleteMatching(candidate Transaction) (Transaction, error) {
	b.mu.Lock()
	log := b.store.LoadAll()
	pos := Locate(log, candidate)
	b.mu.Unlock()
	if pos == NotFound {
		return Transaction{}, ErrNotFound
	}
	return b.Delete(log[pos].ID, log[pos].Kind)
}

func (b *Book) requireUser() (*User, error) {
	user, err := b.session.CurrentUser()
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

func (b *Book) requireAdmin() (*User, error) {
	user, err := b.requireUser()
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		b.log.Warn("stock in denied", zap.String("username", user.Username), zap.String("role", user.Role))
		return nil, ErrAdminOnly
	}
	return user, nil
}

func (b *Book) logActivity(action, username, category string) {
	if b.activity == nil {
		return
	}
	if err := b.activity.Append(action, username, category); err != nil {
		b.log.Warn("activity record not written", zap.Error(err))
	}
}

func buildIn(f InFields) (Transaction, error) {
	item := strings.TrimSpace(f.Item)
	supplier := strings.TrimSpace(f.Supplier)
	receiver := strings.TrimSpace(f.ReceivedBy)
	if item == "" || supplier == "" || receiver == "" {
		return Transaction{}, ErrMissingFields
	}
	if !(f.Quantity > 0) {
		return Transaction{}, ErrNonPositiveQuantity
	}
	if !(f.UnitPrice > 0) {
		return Transaction{}, ErrNonPositivePrice
	}
	tx := Transaction{
		ID:          GenerateID(),
		Kind:        KindIn,
		Item:        strings.ToLower(item),
		DisplayItem: item,
		Quantity:    f.Quantity,
		UnitPrice:   f.UnitPrice,
		TotalPrice:  f.Quantity * f.UnitPrice,
		Supplier:    supplier,
		ReceivedBy:  receiver,
		Note:        strings.TrimSpace(f.Note),
	}
	tx.Stamp(time.Now())
	return tx, nil
}

func buildOut(f OutFields) (Transaction, error) {
	// Out items are stored as typed, not lowercased. Kept for parity with
	// the stock-in/stock-out entry paths; see DESIGN.md.
	item := strings.TrimSpace(f.Item)
	person := strings.TrimSpace(f.Person)
	if item == "" || person == "" {
		return Transaction{}, ErrMissingFields
	}
	if !(f.Quantity > 0) {
		return Transaction{}, ErrNonPositiveQuantity
	}
	tx := Transaction{
		ID:       GenerateID(),
		Kind:     KindOut,
		Item:     item,
		Quantity: f.Quantity,
		Person:   person,
		Reason:   strings.TrimSpace(f.Reason),
	}
	tx.Stamp(time.Now())
	return tx, nil
}
