package donation

import (
	"fmt"

	"donations/internal/pkg/errs"
)

// Status is the position of a donation in its lifecycle.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	// Pending is the initial status; the donation waits for staff review.
	Pending
	// Rejected is terminal; the donation no longer counts toward center load.
	Rejected
	// Collected means the goods are at the center and ready for a delivery.
	Collected
	// Assigned means an active delivery was created but not picked up yet.
	Assigned
	// InTransit means the driver picked the goods up.
	InTransit
	// Delivered means the recipient received the goods.
	Delivered
	// Processed closes a delivered donation.
	Processed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Rejected:  "REJECTED",
		Collected: "COLLECTED",
		Assigned:  "ASSIGNED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Processed: "PROCESSED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Rejected:  "REJECTED",
		Collected: "COLLECTED",
		Assigned:  "ASSIGNED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Processed: "PROCESSED",
	}
}

// ParseStatus converts the persisted / wire name of a status back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a donation status", s))
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

// CanChangeCenter reports whether a donation in this status may be linked to
// (or moved to) a collection center. Once a delivery holds the donation the
// center is fixed.
func (s Status) CanChangeCenter() bool {
	return s == Pending || s == Collected
}

// CountsTowardLoad reports whether a linked donation in this status occupies
// center capacity.
func (s Status) CountsTowardLoad() bool {
	return s.Validate() == nil && s != Rejected
}

// Accept moves PENDING to COLLECTED.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return Unknown, s.refuse("accept")
	}
	return Collected, nil
}

// Reject moves PENDING to REJECTED.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return Unknown, s.refuse("reject")
	}
	return Rejected, nil
}

// AssignDelivery moves COLLECTED to ASSIGNED when a delivery is created.
func (s Status) AssignDelivery() (Status, error) {
	if s != Collected {
		return Unknown, s.refuse("assign a delivery to")
	}
	return Assigned, nil
}

// PickUp moves ASSIGNED to IN_TRANSIT.
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return Unknown, s.refuse("pick up")
	}
	return InTransit, nil
}

// Deliver moves IN_TRANSIT to DELIVERED.
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return Unknown, s.refuse("deliver")
	}
	return Delivered, nil
}

// RevertToCollected undoes an in-flight delivery (ASSIGNED or IN_TRANSIT).
func (s Status) RevertToCollected() (Status, error) {
	if s != Assigned && s != InTransit {
		return Unknown, s.refuse("revert")
	}
	return Collected, nil
}

// ResetToCollected is used when the donation's delivery record is removed. It
// is allowed from every status a delivery can leave behind.
func (s Status) ResetToCollected() (Status, error) {
	switch s {
	case Collected, Assigned, InTransit, Delivered, Processed:
		return Collected, nil
	default:
		return Unknown, s.refuse("reset")
	}
}

// Process moves DELIVERED to PROCESSED.
func (s Status) Process() (Status, error) {
	if s != Delivered {
		return Unknown, s.refuse("process")
	}
	return Processed, nil
}

func (s Status) refuse(action string) error {
	return errs.NewInvalidStateError("donation", s.String(), action)
}
