package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"salonbook/backend/internal/domain"
)

// ListHours reads the bounds back as text so both engines hand out "HH:MM[:SS]".
func (r *Repo) ListHours(ctx context.Context, salonID uuid.UUID) ([]domain.BusinessHours, error) {
	var rows []domain.BusinessHours
	err := r.db.NewSelect().
		Model(&rows).
		Column("salon_id", "weekday", "updated_at").
		ColumnExpr("CAST(bh.open_time AS TEXT) AS open_time").
		ColumnExpr("CAST(bh.close_time AS TEXT) AS close_time").
		Where("salon_id = ?", salonID).
		OrderExpr("weekday ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) ApplyHours(ctx context.Context, salonID uuid.UUID, changes []domain.HoursChange) error {
	now := time.Now().UTC()
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := r.dialect.LockSalon(ctx, tx, salonID); err != nil {
			return err
		}
		for _, c := range changes {
			if c.Window == nil {
				_, err := tx.NewDelete().
					Model((*domain.BusinessHours)(nil)).
					Where("salon_id = ?", salonID).
					Where("weekday = ?", c.Weekday).
					Exec(ctx)
				if err != nil {
					return err
				}
				continue
			}

			row := domain.BusinessHours{
				SalonID:   salonID,
				Weekday:   c.Weekday,
				OpenTime:  domain.StorageClock(c.Window.Open),
				CloseTime: domain.StorageClock(c.Window.Close),
				UpdatedAt: now,
			}
			_, err := tx.NewInsert().
				Model(&row).
				On("CONFLICT (salon_id, weekday) DO UPDATE").
				Set("open_time = EXCLUDED.open_time").
				Set("close_time = EXCLUDED.close_time").
				Set("updated_at = EXCLUDED.updated_at").
				Exec(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
