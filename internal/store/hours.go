package store

import (
	"context"

	"github.com/google/uuid"

	"salonbook/backend/internal/domain"
)

type BusinessHoursRepository interface {
	ListHours(ctx context.Context, salonID uuid.UUID) ([]domain.BusinessHours, error)
	// ApplyHours writes every change in one transaction. Weekdays not present in
	// changes keep their stored rows.
	ApplyHours(ctx context.Context, salonID uuid.UUID, changes []domain.HoursChange) error
}
