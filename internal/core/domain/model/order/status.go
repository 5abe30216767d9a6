package order

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status represents the derived fulfillment state of a production order.
//
// Status is never set directly by callers: it is recomputed from line-item
// and issue state after every delivery and every issue resolution.
//
//	Pending   — no quantity received on any line yet
//	Partial   — some quantity received, or fully received with open issues
//	Completed — every line fully received and every issue chain resolved
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending means no delivery quantity has been accepted yet.
	StatusPending

	// StatusPartial means some, but not all, ordered quantity has been
	// accepted, or the order is fully received but still carries a
	// pending issue somewhere in a resolution chain.
	StatusPartial

	// StatusCompleted means every line item is fully received and no
	// issue in any resolution chain remains pending.
	StatusCompleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusPartial:   "partial",
		StatusCompleted: "completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "pending",
		StatusPartial:   "partial",
		StatusCompleted: "completed",
	}
}

// StatusFromString parses a status name as it appears on the wire and in
// the database. Returns an error for anything other than pending, partial
// or completed.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the three valid states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
