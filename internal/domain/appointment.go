package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AppointmentKind string

const (
	KindBooking AppointmentKind = "booking"
	KindBlock   AppointmentKind = "block"
)

type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Source records the channel a booking came in through.
type Source string

const (
	SourceWebsite   Source = "website"
	SourcePhone     Source = "phone"
	SourceDashboard Source = "dashboard"
)

// ParseSource returns SourceDashboard for an empty value.
func ParseSource(s string) (Source, bool) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case "", SourceDashboard:
		return SourceDashboard, true
	case SourceWebsite:
		return SourceWebsite, true
	case SourcePhone:
		return SourcePhone, true
	default:
		return "", false
	}
}

type Appointment struct {
	bun.BaseModel `bun:"table:appointments,alias:a"`

	ID            uuid.UUID         `bun:"id,pk,type:uuid" json:"id"`
	SalonID       uuid.UUID         `bun:"salon_id,notnull,type:uuid" json:"salon_id"`
	ServiceID     uuid.UUID         `bun:"service_id,notnull,type:uuid" json:"service_id"`
	Kind          AppointmentKind   `bun:"kind,notnull" json:"kind"`
	Status        AppointmentStatus `bun:"status,notnull" json:"status"`
	Source        Source            `bun:"source,notnull" json:"source"`
	StartAt       time.Time         `bun:"start_at,notnull" json:"start_at"`
	EndAt         time.Time         `bun:"end_at,notnull" json:"end_at"`
	CustomerName  string            `bun:"customer_name,nullzero" json:"customer_name,omitempty"`
	CustomerPhone string            `bun:"customer_phone,nullzero" json:"customer_phone,omitempty"`
	CustomerEmail string            `bun:"customer_email,nullzero" json:"customer_email,omitempty"`
	Notes         string            `bun:"notes,nullzero" json:"notes,omitempty"`
	InternalNote  string            `bun:"internal_note,nullzero" json:"internal_note,omitempty"`
	CreatedAt     time.Time         `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt     time.Time         `bun:"updated_at,notnull" json:"updated_at"`

	// ServiceName is filled by read queries that join services.
	ServiceName string `bun:"service_name,scanonly" json:"service_name,omitempty"`
}

func (a Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// Blocking reports whether the appointment takes part in overlap checks.
func (a Appointment) Blocking() bool {
	return a.Kind == KindBooking && a.Active()
}

func (a Appointment) Duration() time.Duration {
	return a.EndAt.Sub(a.StartAt)
}

// SameBooking reports whether b describes the same booking request as a.
// It is used to tell an idempotent replay from a reused key.
func (a Appointment) SameBooking(b Appointment) bool {
	return a.SalonID == b.SalonID &&
		a.ServiceID == b.ServiceID &&
		a.StartAt.Equal(b.StartAt) &&
		a.EndAt.Equal(b.EndAt) &&
		a.CustomerName == b.CustomerName &&
		a.CustomerPhone == b.CustomerPhone &&
		a.CustomerEmail == b.CustomerEmail
}

// ApplyDefaults fills kind, status and source of a new appointment.
func (a *Appointment) ApplyDefaults() {
	if a.Kind == "" {
		a.Kind = KindBooking
	}
	if a.Status == "" {
		a.Status = StatusConfirmed
	}
	if a.Source == "" {
		a.Source = SourceDashboard
	}
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		a.ApplyDefaults()
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
