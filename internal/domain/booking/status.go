package booking

import "servicemarket/internal/pkg/errs"

var ErrInvalidStatus = errs.New("invalid booking status")

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsReplayable reports whether an existing booking in this status may be
// returned as-is for an idempotent retry of the original create request.
func (s Status) IsReplayable() bool {
	return s == StatusPending || s == StatusConfirmed
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// professionalTransitions is the full transition table for the assigned
// professional. Everything absent from it is rejected.
var professionalTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionByProfessional(to Status) bool {
	for _, allowed := range professionalTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanBeCancelledByCustomer covers the customer side of the state machine;
// customers may only cancel, and only before the booking is resolved.
func (s Status) CanBeCancelledByCustomer() bool {
	return s == StatusPending || s == StatusConfirmed
}
