package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
)

const (
	overlapConstraint = "appointments_no_overlap"

	codeExclusionViolation = "23P01"
	codeUniqueViolation    = "23505"
)

// Dialect plugs Postgres behavior into the shared repository.
type Dialect struct{}

// LockSalon takes a transaction scoped advisory lock keyed by salon id.
func (Dialect) LockSalon(ctx context.Context, tx bun.Tx, salonID uuid.UUID) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", salonID.String()).Exec(ctx)
	return err
}

func (Dialect) IsOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeExclusionViolation && pgErr.ConstraintName == overlapConstraint
}

func (Dialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
