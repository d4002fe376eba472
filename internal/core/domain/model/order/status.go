package order

import (
	"fmt"
	"strings"

	"ordersapi/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The numeric values are the ones
// stored in the orders table and exchanged with API clients.
//
//	Pending ──> Processing ──> Complete
//	   │             │
//	   └─────────────┴──> Cancelled
type Status int

const (
	Unknown    Status = 0
	Pending    Status = 10
	Processing Status = 20
	Complete   Status = 30
	Cancelled  Status = 40
)

var statusNames = map[Status]string{
	Pending:    "Pending",
	Processing: "Processing",
	Complete:   "Complete",
	Cancelled:  "Cancelled",
}

// ParseStatus accepts the status name in any letter case.
func ParseStatus(name string) (Status, error) {
	for status, statusName := range statusNames {
		if strings.EqualFold(statusName, strings.TrimSpace(name)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsFinal reports whether no further transition is allowed.
func (s Status) IsFinal() bool {
	return s == Complete || s == Cancelled
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Staying in the same non-final status is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if next.Validate() != nil || s.Validate() != nil {
		return false
	}
	if s == next {
		return !s.IsFinal()
	}
	switch s {
	case Pending:
		return next == Processing || next == Complete || next == Cancelled
	case Processing:
		return next == Complete || next == Cancelled
	default:
		return false
	}
}

// TransitionTo returns next when the move is allowed.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return s, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot move order from %s to %s", s, next),
		)
	}
	return next, nil
}
