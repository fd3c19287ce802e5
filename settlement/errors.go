package settlement

import (
	"errors"
	"fmt"
)

// Sentinel errors let callers (and the HTTP error handler) branch on the
// specific business failure.
var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrAlreadyCancelled = errors.New("sale has already been cancelled")
)

// ValidationError reports bad input: empty cart, non-positive amounts, amounts
// above the subtotal, quantities below a length-based minimum. Reported before
// any side effect is attempted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InsufficientStockError names the offending product. The whole commit is
// rejected; no partial sale exists when this is returned.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   float64
	Requested   float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %v, requested %v",
		e.ProductName, e.Available, e.Requested)
}
