package inventory

import "errors"

// Domain errors for the inventory ledger
var (
	ErrNotFound        = errors.New("inventory item not found")
	ErrInvalidQuantity = errors.New("quantity cannot be negative")
	// ErrStockConflict signals that a concurrent writer consumed stock
	// between the check and commit phases of a deduction.
	ErrStockConflict = errors.New("inventory changed concurrently, deduction aborted")
)
