package stocktrack

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated rejects mutations when no user is signed in.
	ErrNotAuthenticated = errors.New("user not authenticated")
	// ErrAdminOnly rejects stock-in mutations from non-admin users.
	ErrAdminOnly = errors.New("only administrators can add stock")
	// ErrMissingFields rejects a mutation with a required field left empty.
	ErrMissingFields = errors.New("please fill all required fields")
	// ErrNonPositiveQuantity rejects a quantity that is zero or negative.
	ErrNonPositiveQuantity = errors.New("quantity must be a positive number")
	// ErrNonPositivePrice rejects a unit price that is zero or negative.
	ErrNonPositivePrice = errors.New("price must be a positive number")
	// ErrNotFound signals that no log entry carries the requested ID.
	ErrNotFound = errors.New("transaction not found")
	// ErrKindMismatch signals that the located entry is not of the
	// expected kind.
	ErrKindMismatch = errors.New("transaction kind mismatch")
)

// InsufficientStockError rejects a stock out larger than the available
// level, carrying the figure the caller surfaces to the user.
type InsufficientStockError struct {
	Item      string
	Requested float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("cannot stock out %g %s - only %g available", e.Requested, e.Item, e.Available)
}
