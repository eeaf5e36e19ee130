package domain

import "errors"

var (
	ErrNonPositiveQuantity = errors.New("amount must be greater than zero")
	ErrInsufficientStock   = errors.New("insufficient stock to reduce requested quantity")
)

// StockState is the (stock, status) pair the stock rules operate on. The
// functions below are pure: they never mutate their input and return the new
// state or an error, so a failed operation leaves the caller's state intact.
type StockState struct {
	Stock  int
	Status Status
}

// IncreaseStock adds quantity to the stock. A product that was inactive
// becomes active again once it holds stock. Increasing never deactivates.
func IncreaseStock(s StockState, quantity int) (StockState, error) {
	if quantity <= 0 {
		return s, ErrNonPositiveQuantity
	}

	s.Stock += quantity
	if s.Stock > 0 && s.Status == StatusInactive {
		s.Status = StatusActive
	}
	return s, nil
}

// ReduceStock removes quantity from the stock. Stock is never allowed to go
// negative; draining it to exactly zero deactivates an active product.
func ReduceStock(s StockState, quantity int) (StockState, error) {
	if quantity <= 0 {
		return s, ErrNonPositiveQuantity
	}

	newStock := s.Stock - quantity
	if newStock < 0 {
		return s, ErrInsufficientStock
	}

	s.Stock = newStock
	if s.Stock == 0 && s.Status == StatusActive {
		s.Status = StatusInactive
	}
	return s, nil
}

// AdjustStock applies a signed delta. A zero delta is a successful no-op.
// Crossing down to zero deactivates, climbing above zero reactivates.
func AdjustStock(s StockState, delta int) (StockState, error) {
	if delta == 0 {
		return s, nil
	}

	newStock := s.Stock + delta
	if newStock < 0 {
		return s, ErrInsufficientStock
	}

	s.Stock = newStock
	if s.Stock == 0 && s.Status == StatusActive {
		s.Status = StatusInactive
	} else if s.Stock > 0 && s.Status == StatusInactive {
		s.Status = StatusActive
	}
	return s, nil
}
