package board

import (
	"time"

	"github.com/google/uuid"

	"serviceboard/internal/model"
)

// NextAppointment selects the soonest appointment strictly in the
// future, or nil when every appointment is in the past. Ties on the
// same instant resolve to the first occurrence in the input slice.
// Selection compares instants directly; formatting for display is
// presentation only and never affects the choice.
func NextAppointment(appts []model.Appointment, now time.Time) *model.Appointment {
	var next *model.Appointment
	for i := range appts {
		a := &appts[i]
		if !a.Datetime.After(now) {
			continue
		}
		if next == nil || a.Datetime.Before(next.Datetime) {
			next = a
		}
	}
	return next
}

// Tracker derives the single upcoming appointment to surface and owns
// the one-shot highlight: the first time a given appointment is
// selected within a session the caller should show the highlight, and
// never again for the same appointment. A refetch that still finds the
// same soonest appointment does not re-trigger it; a different
// selection does.
type Tracker struct {
	highlighted map[uuid.UUID]bool
}

func NewTracker() *Tracker {
	return &Tracker{highlighted: make(map[uuid.UUID]bool)}
}

// Observe runs the selection against a fresh appointment fetch and
// reports whether the highlight should fire for the selected
// appointment.
func (t *Tracker) Observe(appts []model.Appointment, now time.Time) (*model.Appointment, bool) {
	next := NextAppointment(appts, now)
	if next == nil {
		return nil, false
	}
	if t.highlighted[next.ID] {
		return next, false
	}
	t.highlighted[next.ID] = true
	return next, true
}
