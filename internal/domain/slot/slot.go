package slot

import (
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidState = errs.New("invalid slot state")

type State string

const (
	StateAvailable State = "AVAILABLE"
	StateHeld      State = "HELD"
	StateBooked    State = "BOOKED"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateAvailable, StateHeld, StateBooked:
		return true
	default:
		return false
	}
}

func NewState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", ErrInvalidState
	}
	return state, nil
}

// Slot is one bookable time window on a professional's calendar. Slots are
// materialized in bulk from recurring availability and mutated only through
// guarded state changes; a freed slot is bookable again while any booking
// that referenced it keeps its own snapshot of the window.
type Slot struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	StartAt        time.Time
	EndAt          time.Time
	State          State
}

// StateForBookingStatus maps a booking status to the slot state that keeps
// the calendar consistent with it. A slot is only locked while its booking
// is unresolved; every resolved status reopens the window.
func StateForBookingStatus(status booking.Status) State {
	switch status {
	case booking.StatusPending:
		return StateHeld
	case booking.StatusConfirmed:
		return StateBooked
	default: // COMPLETED, CANCELLED, NO_SHOW
		return StateAvailable
	}
}

// AvailabilityWindow is one recurring weekly window (hours are local to the
// professional's calendar day).
type AvailabilityWindow struct {
	Weekday   time.Weekday
	StartHour int
	EndHour   int
}

// Generate materializes hourly AVAILABLE slots for the next horizonDays
// from the given weekly windows, skipping slots that would start at or
// before now. Callers deduplicate against existing rows at insert time.
func Generate(professionalID uuid.UUID, windows []AvailabilityWindow, now time.Time, horizonDays int) []Slot {
	var slots []Slot

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for d := 0; d < horizonDays; d++ {
		date := day.AddDate(0, 0, d)
		for _, w := range windows {
			if date.Weekday() != w.Weekday {
				continue
			}
			for hour := w.StartHour; hour < w.EndHour; hour++ {
				startAt := date.Add(time.Duration(hour) * time.Hour)
				if !startAt.After(now) {
					continue
				}
				slots = append(slots, Slot{
					ID:             uuid.New(),
					ProfessionalID: professionalID,
					StartAt:        startAt,
					EndAt:          startAt.Add(time.Hour),
					State:          StateAvailable,
				})
			}
		}
	}

	return slots
}
