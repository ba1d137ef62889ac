package domain

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid transition")

	ErrCompleted      = fmt.Errorf("%w: cannot update a completed order", ErrInvalidTransition)
	ErrNotCancellable = fmt.Errorf("%w: cannot cancel", ErrInvalidTransition)
)

// Statuses lists every recognized status along the forward path, then cancelled.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

// ParseStatus accepts only the exact lower-case names in Statuses.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if st.rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

func (s Status) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusConfirmed:
		return 1
	case StatusShipped:
		return 2
	case StatusDelivered:
		return 3
	case StatusCancelled:
		return 4
	}
	return -1
}

// Terminal states are frozen for good.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CustomerCancellable is true only while nothing has been done with the order.
func (s Status) CustomerCancellable() bool {
	return s == StatusPending
}

// CanTransitionTo applies the operator rules: terminal orders are frozen,
// any open order may be cancelled, otherwise the order only moves forward
// along pending, confirmed, shipped, delivered (steps may be skipped).
func (s Status) CanTransitionTo(next Status) error {
	if s.Terminal() {
		return ErrCompleted
	}
	if next.rank() < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if next == StatusCancelled {
		return nil
	}
	if next.rank() <= s.rank() {
		return fmt.Errorf("%w: cannot move order from %s to %s", ErrInvalidTransition, s, next)
	}
	return nil
}
