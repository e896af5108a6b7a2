//go:build unit

package booking_test

import (
	"testing"
	"time"

	"access-scheduler/internal/domain/booking"
	"access-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "gate-1", actual.Resource())
		assert.Equal(t, "Alice Martins", actual.Customer().Name())
		assert.Equal(t, 30*time.Minute, actual.Window().Duration())
	})

	t.Run("resource validation", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Resource = ""
		}).BuildDomain()
		assert.ErrorIs(t, err, booking.ErrEmptyResource)
	})

	t.Run("window in the past is rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Now = b.Start.Add(time.Hour)
		}).BuildDomain()
		assert.ErrorIs(t, err, booking.ErrWindowInPast)
	})

	t.Run("start within the past tolerance is accepted", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Now = b.Start.Add(booking.PastTolerance - time.Minute)
		}).BuildDomain()
		assert.NoError(t, err)
	})

	t.Run("IDs are unique per booking", func(t *testing.T) {
		b1, err1 := builder.NewBookingBuilder().BuildDomain()
		b2, err2 := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, b1.ID(), b2.ID())
	})
}

func TestConflictsWith(t *testing.T) {
	base := builder.NewBookingBuilder()
	first, err := base.BuildDomain()
	require.NoError(t, err)

	t.Run("same resource overlapping windows conflict", func(t *testing.T) {
		other, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Start = b.Start.Add(15 * time.Minute)
			b.End = b.End.Add(15 * time.Minute)
		}).BuildDomain()
		require.NoError(t, err)

		assert.True(t, first.ConflictsWith(other))
		assert.True(t, other.ConflictsWith(first))
	})

	t.Run("different resource never conflicts", func(t *testing.T) {
		other, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Resource = "gate-2"
		}).BuildDomain()
		require.NoError(t, err)

		assert.False(t, first.ConflictsWith(other))
	})

	t.Run("touching windows do not conflict", func(t *testing.T) {
		other, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Start = b.End
			b.End = b.End.Add(30 * time.Minute)
		}).BuildDomain()
		require.NoError(t, err)

		assert.False(t, first.ConflictsWith(other))
	})
}

func TestReconstructBooking(t *testing.T) {
	id := uuid.New()
	version := uuid.New()
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	customer, err := booking.NewCustomer("Alice", "123")
	require.NoError(t, err)
	window, err := booking.NewTimeWindow(
		time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 11, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	// Hydration skips the past check: stored rows may be arbitrarily old.
	b := booking.ReconstructBooking(id, "gate-1", customer, window, createdAt, version)
	assert.Equal(t, id, b.ID())
	assert.Equal(t, version, b.VersionToken())
	assert.Equal(t, createdAt, b.CreatedAt())
}
