package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salonbook/backend/internal/domain"
)

// AppointmentRepository persists appointments scoped by salon.
//
// Create and Reschedule return ErrConflict when the write would overlap another
// active booking of the salon, whether detected by the in-transaction check or by
// the storage constraint. Create returns ErrIdempotencyConflict when appt.ID is
// already used by a different booking, and the stored row for an exact replay.
type AppointmentRepository interface {
	Get(ctx context.Context, salonID, appointmentID uuid.UUID) (domain.Appointment, error)
	HasOverlap(ctx context.Context, salonID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Reschedule(ctx context.Context, salonID, appointmentID uuid.UUID, start, end time.Time) (domain.Appointment, error)
	Delete(ctx context.Context, salonID, appointmentID uuid.UUID) error
	ListActive(ctx context.Context, salonID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error)
}

// SalonTx is the set of appointment operations available inside a transaction
// that holds the salon's write lock.
type SalonTx interface {
	GetAppointment(ctx context.Context, salonID, appointmentID uuid.UUID) (domain.Appointment, error)
	HasOverlap(ctx context.Context, salonID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error)
	CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	UpdateAppointmentTimes(ctx context.Context, salonID, appointmentID uuid.UUID, start, end time.Time) error
	DeleteAppointment(ctx context.Context, salonID, appointmentID uuid.UUID) error
}
