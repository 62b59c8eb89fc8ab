package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Salon struct {
	bun.BaseModel `bun:"table:salons,alias:sa"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Slug      string    `bun:"slug,notnull,unique"`
	Name      string    `bun:"name,notnull"`
	Timezone  string    `bun:"timezone,nullzero"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func (s *Salon) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	return stampModel(&s.ID, &s.CreatedAt, &s.UpdatedAt, query)
}

// Service is a bookable offering of a single salon.
type Service struct {
	bun.BaseModel `bun:"table:services,alias:s"`

	ID              uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	SalonID         uuid.UUID `bun:"salon_id,notnull,type:uuid" json:"salon_id"`
	Name            string    `bun:"name,notnull" json:"name"`
	DurationMinutes int       `bun:"duration_min,nullzero" json:"duration_min"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"-"`
	UpdatedAt       time.Time `bun:"updated_at,notnull" json:"-"`
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Bookable reports whether the service has a usable duration.
func (s Service) Bookable() bool {
	return s.DurationMinutes > 0
}

func (s *Service) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	return stampModel(&s.ID, &s.CreatedAt, &s.UpdatedAt, query)
}

func stampModel(id *uuid.UUID, createdAt, updatedAt *time.Time, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if *id == uuid.Nil {
			v, err := uuid.NewV7()
			if err != nil {
				return err
			}
			*id = v
		}
		if createdAt.IsZero() {
			*createdAt = now
		}
		if updatedAt.IsZero() {
			*updatedAt = now
		}
	case *bun.UpdateQuery:
		*updatedAt = now
	}
	return nil
}
