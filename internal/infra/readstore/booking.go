package readstore

import (
	"context"
	"time"

	"access-scheduler/internal/domain/booking"
	"access-scheduler/internal/infra"
	"access-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingReadStore reads committed bookings. Every query sees a consistent
// snapshot for its resource and range; it never provides exclusivity.
type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

const bookingColumns = `id, resource, customer_name, document, slot, created_at, version`

const findConflictSQL = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE resource = $1 AND slot && $2
ORDER BY lower(slot)
LIMIT 1
`

// FindConflict returns the earliest-starting committed booking overlapping
// the window, or nil when the window is free.
func (r *BookingReadStore) FindConflict(ctx context.Context, resource string, window booking.TimeWindow) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, findConflictSQL, resource, pgconv.WindowToRange(window))

	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find conflicting booking", err)
	}
	return b, nil
}

const listOverlappingSQL = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE resource = $1 AND slot && tstzrange($2, $3, '[)')
ORDER BY lower(slot)
`

// ListOverlapping returns the resource's bookings intersecting [from, to),
// ordered by start ascending.
func (r *BookingReadStore) ListOverlapping(ctx context.Context, resource string, from, to time.Time) ([]*booking.Booking, error) {
	rows, err := r.pool.Query(ctx, listOverlappingSQL, resource, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}

	return bookings, nil
}

const findByIDSQL = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE id = $1
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, findByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id           uuid.UUID
		resource     string
		customerName string
		document     string
		slot         pgtype.Range[pgtype.Timestamptz]
		createdAt    time.Time
		version      uuid.UUID
	)

	if err := row.Scan(&id, &resource, &customerName, &document, &slot, &createdAt, &version); err != nil {
		return nil, err
	}

	window, err := pgconv.WindowFromRange(slot)
	if err != nil {
		return nil, err
	}
	customer, err := booking.NewCustomer(customerName, document)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(id, resource, customer, window, createdAt, version), nil
}
