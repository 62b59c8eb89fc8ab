package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/store"
)

func (r *Repo) SalonBySlug(ctx context.Context, slug string) (domain.Salon, error) {
	var s domain.Salon
	err := r.db.NewSelect().
		Model(&s).
		Where("slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Salon{}, store.ErrNotFound
		}
		return domain.Salon{}, err
	}
	return s, nil
}

func (r *Repo) ServiceForSalon(ctx context.Context, salonID, serviceID uuid.UUID) (domain.Service, error) {
	var s domain.Service
	err := r.db.NewSelect().
		Model(&s).
		Where("salon_id = ?", salonID).
		Where("id = ?", serviceID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Service{}, store.ErrNotFound
		}
		return domain.Service{}, err
	}
	return s, nil
}

func (r *Repo) ListServices(ctx context.Context, salonID uuid.UUID) ([]domain.Service, error) {
	var rows []domain.Service
	err := r.db.NewSelect().
		Model(&rows).
		Where("salon_id = ?", salonID).
		OrderExpr("name ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
