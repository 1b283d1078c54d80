package delivery

import (
	"fmt"

	"donations/internal/pkg/errs"
)

// Status is the position of a delivery in its lifecycle:
//
//	ASSIGNED -> PICKED_UP -> IN_TRANSIT -> DELIVERED
//
// Any non-terminal status may move to CANCELLED, and PICKED_UP may complete
// directly. DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Assigned
	PickedUp
	InTransit
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// ParseStatus maps an upper-case status name to a Status. Case matters: the
// stored and wire forms are always upper case.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a delivery status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// PickUp is allowed from ASSIGNED only.
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return Unknown, s.refuse("pick up")
	}
	return PickedUp, nil
}

// MarkInTransit is allowed from PICKED_UP only.
func (s Status) MarkInTransit() (Status, error) {
	if s != PickedUp {
		return Unknown, s.refuse("mark in transit")
	}
	return InTransit, nil
}

// Complete is allowed once the goods are on the road, with or without the
// intermediate IN_TRANSIT step.
func (s Status) Complete() (Status, error) {
	if s != PickedUp && s != InTransit {
		return Unknown, s.refuse("complete")
	}
	return Delivered, nil
}

// Cancel is allowed from every non-terminal status.
func (s Status) Cancel() (Status, error) {
	if s.Validate() != nil || s.IsTerminal() {
		return Unknown, s.refuse("cancel")
	}
	return Cancelled, nil
}

func (s Status) refuse(action string) error {
	return errs.NewInvalidStateError("delivery", s.String(), action)
}
