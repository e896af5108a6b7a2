package repository

import (
	"context"
	"errors"
	"time"

	"access-scheduler/internal/domain/booking"
	"access-scheduler/internal/infra"
	"access-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeExclusionViolation = "23P01"
	pgErrCodeUniqueViolation    = "23505"
)

// BookingRepository owns the write path. Exclusivity is enforced by the
// bookings exclusion constraint, not by any check in this process: when two
// writers race for overlapping windows the database commits exactly one and
// rejects the rest with an exclusion violation.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const insertBookingSQL = `
INSERT INTO bookings (id, resource, customer_name, document, slot)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, version
`

// Insert persists the booking and returns it hydrated with the
// storage-assigned creation time and version token. An overlap with a
// committed booking surfaces as KindConflict.
func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	var (
		createdAt time.Time
		version   uuid.UUID
	)

	err := r.pool.QueryRow(ctx, insertBookingSQL,
		b.ID(),
		b.Resource(),
		b.Customer().Name(),
		b.Customer().Document(),
		pgconv.WindowToRange(b.Window()),
	).Scan(&createdAt, &version)
	if err != nil {
		if isOverlapViolation(err) {
			return nil, infra.WrapRepoErr("booking window already taken", err, infra.KindConflict)
		}
		return nil, infra.WrapRepoErr("failed to insert booking", err)
	}

	return booking.ReconstructBooking(b.ID(), b.Resource(), b.Customer(), b.Window(), createdAt, version), nil
}

// Delete removes the booking and reports whether a row existed. Unknown ids
// are not an error.
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete booking", err)
	}
	return tag.RowsAffected() > 0, nil
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeExclusionViolation || pgErr.Code == pgErrCodeUniqueViolation
}
