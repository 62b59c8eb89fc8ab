package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"salonbook/backend/internal/domain"
	"salonbook/backend/internal/store"
)

type salonTx struct {
	tx      bun.Tx
	dialect Dialect
}

func (r *Repo) Get(ctx context.Context, salonID, appointmentID uuid.UUID) (domain.Appointment, error) {
	return getAppointment(ctx, r.db, salonID, appointmentID)
}

func (r *Repo) HasOverlap(ctx context.Context, salonID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	return hasOverlap(ctx, r.db, salonID, start, end, excludeID)
}

func (r *Repo) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	appt.ApplyDefaults()

	var out domain.Appointment
	err := r.InSalonTransaction(ctx, appt.SalonID, func(ctx context.Context, tx store.SalonTx) error {
		if appt.ID != uuid.Nil {
			existing, err := tx.GetAppointment(ctx, appt.SalonID, appt.ID)
			switch {
			case err == nil:
				if !existing.SameBooking(appt) {
					return store.ErrIdempotencyConflict
				}
				out = existing
				return nil
			case !errors.Is(err, store.ErrNotFound):
				return err
			}
		}

		if appt.Blocking() {
			conflict, err := tx.HasOverlap(ctx, appt.SalonID, appt.StartAt, appt.EndAt, appt.ID)
			if err != nil {
				return err
			}
			if conflict {
				return store.ErrConflict
			}
		}

		created, err := tx.CreateAppointment(ctx, appt)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

func (r *Repo) Reschedule(ctx context.Context, salonID, appointmentID uuid.UUID, start, end time.Time) (domain.Appointment, error) {
	var out domain.Appointment
	err := r.InSalonTransaction(ctx, salonID, func(ctx context.Context, tx store.SalonTx) error {
		current, err := tx.GetAppointment(ctx, salonID, appointmentID)
		if err != nil {
			return err
		}
		if current.Blocking() {
			conflict, err := tx.HasOverlap(ctx, salonID, start, end, appointmentID)
			if err != nil {
				return err
			}
			if conflict {
				return store.ErrConflict
			}
		}
		if err := tx.UpdateAppointmentTimes(ctx, salonID, appointmentID, start, end); err != nil {
			return err
		}
		out, err = tx.GetAppointment(ctx, salonID, appointmentID)
		return err
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, salonID, appointmentID uuid.UUID) error {
	return r.InSalonTransaction(ctx, salonID, func(ctx context.Context, tx store.SalonTx) error {
		return tx.DeleteAppointment(ctx, salonID, appointmentID)
	})
}

// ListActive returns active bookings intersecting [windowStart, windowEnd),
// ordered by start, with the service name joined in.
func (r *Repo) ListActive(ctx context.Context, salonID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := selectWithServiceName(r.db, &rows).
		Where("a.salon_id = ?", salonID).
		Where("a.kind = ?", domain.KindBooking).
		Where("a.status <> ?", domain.StatusCancelled).
		Where("a.start_at < ?", windowEnd.UTC()).
		Where("a.end_at > ?", windowStart.UTC()).
		OrderExpr("a.start_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) InSalonTransaction(ctx context.Context, salonID uuid.UUID, fn func(ctx context.Context, tx store.SalonTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := r.dialect.LockSalon(ctx, tx, salonID); err != nil {
			return err
		}
		return fn(ctx, salonTx{tx: tx, dialect: r.dialect})
	})
}

func (t salonTx) GetAppointment(ctx context.Context, salonID, appointmentID uuid.UUID) (domain.Appointment, error) {
	return getAppointment(ctx, t.tx, salonID, appointmentID)
}

func (t salonTx) HasOverlap(ctx context.Context, salonID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	return hasOverlap(ctx, t.tx, salonID, start, end, excludeID)
}

func (t salonTx) CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	m.StartAt = appt.StartAt.UTC()
	m.EndAt = appt.EndAt.UTC()
	m.ServiceName = ""

	_, err := t.tx.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		if t.dialect.IsOverlapViolation(err) {
			return domain.Appointment{}, store.ErrConflict
		}
		if t.dialect.IsUniqueViolation(err) {
			return domain.Appointment{}, store.ErrIdempotencyConflict
		}
		return domain.Appointment{}, err
	}
	return m, nil
}

func (t salonTx) UpdateAppointmentTimes(ctx context.Context, salonID, appointmentID uuid.UUID, start, end time.Time) error {
	m := domain.Appointment{StartAt: start.UTC(), EndAt: end.UTC()}
	res, err := t.tx.NewUpdate().
		Model(&m).
		Column("start_at", "end_at", "updated_at").
		Where("salon_id = ?", salonID).
		Where("id = ?", appointmentID).
		Exec(ctx)
	if err != nil {
		if t.dialect.IsOverlapViolation(err) {
			return store.ErrConflict
		}
		return err
	}
	return requireAffected(res)
}

func (t salonTx) DeleteAppointment(ctx context.Context, salonID, appointmentID uuid.UUID) error {
	res, err := t.tx.NewDelete().
		Model((*domain.Appointment)(nil)).
		Where("salon_id = ?", salonID).
		Where("id = ?", appointmentID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func getAppointment(ctx context.Context, db bun.IDB, salonID, appointmentID uuid.UUID) (domain.Appointment, error) {
	var m domain.Appointment
	err := selectWithServiceName(db, &m).
		Where("a.salon_id = ?", salonID).
		Where("a.id = ?", appointmentID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return m, nil
}

func hasOverlap(ctx context.Context, db bun.IDB, salonID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	q := db.NewSelect().
		Model((*domain.Appointment)(nil)).
		Where("salon_id = ?", salonID).
		Where("kind = ?", domain.KindBooking).
		Where("status <> ?", domain.StatusCancelled).
		Where("start_at < ?", end.UTC()).
		Where("end_at > ?", start.UTC())
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	return q.Exists(ctx)
}

func selectWithServiceName(db bun.IDB, model any) *bun.SelectQuery {
	return db.NewSelect().
		Model(model).
		ColumnExpr("a.*").
		ColumnExpr("s.name AS service_name").
		Join("LEFT JOIN services AS s ON s.id = a.service_id")
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
