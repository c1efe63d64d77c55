package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──┬──> Approved
//	          └──> Cancelled
//
// Approved and Cancelled are terminal. Every transition originates from
// Pending and there is no Pending -> Pending no-op.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota

	// Pending is the initial state of a placed order.
	Pending

	// Approved is terminal.
	Approved

	// Cancelled is terminal.
	Cancelled
)

const (
	actionApprove = "approve"
	actionCancel  = "cancel"
)

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Approved:  "APPROVED",
	Cancelled: "CANCELLED",
}

// StatusFromString parses the wire name of a status ("PENDING", "APPROVED",
// "CANCELLED").
func StatusFromString(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Approved || s == Cancelled
}

// Approve returns the status that follows an approval of an order in s.
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return s, errs.NewStateTransitionIsInvalidError("order", actionApprove, s.String())
	}
	return Approved, nil
}

// Cancel returns the status that follows a cancellation of an order in s.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return s, errs.NewStateTransitionIsInvalidError("order", actionCancel, s.String())
	}
	return Cancelled, nil
}
