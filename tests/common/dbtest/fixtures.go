//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertBooking writes a booking row directly, bypassing the API. Used to
// arrange occupied windows before exercising the endpoints.
func InsertBooking(t *testing.T, db DBLike, resource string, start, end time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		`INSERT INTO bookings (id, resource, customer_name, document, slot)
		 VALUES ($1, $2, $3, $4, tstzrange($5, $6, '[)'))`,
		id, resource, "Fixture Customer", "00000000000", start.UTC(), end.UTC())
	require.NoError(t, err)

	return id
}

func CountBookings(t *testing.T, db DBLike, resource string) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE resource = $1", resource).Scan(&count)
	require.NoError(t, err)

	return count
}

// ResetDB truncates all booking state between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE bookings")
	return err
}
