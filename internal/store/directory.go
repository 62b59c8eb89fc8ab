package store

import (
	"context"

	"github.com/google/uuid"

	"salonbook/backend/internal/domain"
)

// Directory resolves salons and their service catalog. Both lookups return
// ErrNotFound for unknown rows; a service of another salon is unknown.
type Directory interface {
	SalonBySlug(ctx context.Context, slug string) (domain.Salon, error)
	ServiceForSalon(ctx context.Context, salonID, serviceID uuid.UUID) (domain.Service, error)
	ListServices(ctx context.Context, salonID uuid.UUID) ([]domain.Service, error)
}
