// Package events announces appointment changes to external consumers such as
// calendar sync. Publishing happens after the write committed and is best effort.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salonbook/backend/internal/domain"
)

type Type string

const (
	AppointmentBooked      Type = "appointment.booked"
	AppointmentRescheduled Type = "appointment.rescheduled"
	AppointmentDeleted     Type = "appointment.deleted"
)

type Event struct {
	ID            uuid.UUID `json:"event_id"`
	Type          Type      `json:"event_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	SalonID       uuid.UUID `json:"salon_id"`
	SalonSlug     string    `json:"salon_slug"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	ServiceID     uuid.UUID `json:"service_id"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// New builds an event for appt. Deleted events carry only identifiers. The event
// id is derived from the appointment, type and interval, so a replayed create
// publishes a duplicate that consumers can drop.
func New(typ Type, salon domain.Salon, appt domain.Appointment) Event {
	ev := Event{
		ID:            eventID(typ, appt),
		Type:          typ,
		OccurredAt:    time.Now().UTC(),
		SalonID:       salon.ID,
		SalonSlug:     salon.Slug,
		AppointmentID: appt.ID,
	}
	if typ != AppointmentDeleted {
		ev.ServiceID = appt.ServiceID
		ev.StartAt = appt.StartAt.UTC()
		ev.EndAt = appt.EndAt.UTC()
	}
	return ev
}

func eventID(typ Type, appt domain.Appointment) uuid.UUID {
	name := string(typ)
	if typ != AppointmentDeleted {
		name += "|" + appt.StartAt.UTC().Format(time.RFC3339Nano) + "|" + appt.EndAt.UTC().Format(time.RFC3339Nano)
	}
	return uuid.NewSHA1(appt.ID, []byte(name))
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
