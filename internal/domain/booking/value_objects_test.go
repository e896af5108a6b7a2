//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"access-scheduler/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end time.Time) booking.TimeWindow {
	t.Helper()
	w, err := booking.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestTimeWindow(t *testing.T) {
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("start must precede end", func(t *testing.T) {
		_, err := booking.NewTimeWindow(base, base)
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)

		_, err = booking.NewTimeWindow(base.Add(time.Hour), base)
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)
	})

	t.Run("times are normalized to UTC", func(t *testing.T) {
		loc := time.FixedZone("offset", -3*60*60)
		w := mustWindow(t, base.In(loc), base.In(loc).Add(time.Hour))
		assert.Equal(t, time.UTC, w.Start().Location())
		assert.True(t, w.Start().Equal(base))
	})

	t.Run("overlap cases", func(t *testing.T) {
		a := mustWindow(t, base, base.Add(time.Hour))

		cases := []struct {
			name    string
			other   booking.TimeWindow
			overlap bool
		}{
			{"identical", mustWindow(t, base, base.Add(time.Hour)), true},
			{"partial from the left", mustWindow(t, base.Add(-30*time.Minute), base.Add(30*time.Minute)), true},
			{"partial from the right", mustWindow(t, base.Add(30*time.Minute), base.Add(90*time.Minute)), true},
			{"fully contained", mustWindow(t, base.Add(15*time.Minute), base.Add(45*time.Minute)), true},
			{"containing", mustWindow(t, base.Add(-time.Hour), base.Add(2*time.Hour)), true},
			{"touching before", mustWindow(t, base.Add(-time.Hour), base), false},
			{"touching after", mustWindow(t, base.Add(time.Hour), base.Add(2*time.Hour)), false},
			{"disjoint", mustWindow(t, base.Add(3*time.Hour), base.Add(4*time.Hour)), false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.overlap, a.Overlaps(tc.other))
				// Overlap is symmetric.
				assert.Equal(t, tc.overlap, tc.other.Overlaps(a))
			})
		}
	})

	t.Run("clamp to bounds", func(t *testing.T) {
		bounds := mustWindow(t, base, base.Add(2*time.Hour))

		spanning := mustWindow(t, base.Add(-time.Hour), base.Add(3*time.Hour))
		clamped := spanning.ClampTo(bounds)
		assert.True(t, clamped.Start().Equal(base))
		assert.True(t, clamped.End().Equal(base.Add(2*time.Hour)))

		disjoint := mustWindow(t, base.Add(5*time.Hour), base.Add(6*time.Hour))
		assert.True(t, disjoint.ClampTo(bounds).IsZero())
	})
}

func TestCustomer(t *testing.T) {
	t.Run("valid customer", func(t *testing.T) {
		c, err := booking.NewCustomer("Alice Martins", "12345678900")
		require.NoError(t, err)
		assert.Equal(t, "Alice Martins", c.Name())
		assert.Equal(t, "12345678900", c.Document())
	})

	t.Run("name and document are trimmed", func(t *testing.T) {
		c, err := booking.NewCustomer("  Alice  ", "  123  ")
		require.NoError(t, err)
		assert.Equal(t, "Alice", c.Name())
		assert.Equal(t, "123", c.Document())
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name     string
			cname    string
			document string
			errIs    error
		}{
			{"empty name", "", "123", booking.ErrEmptyCustomer},
			{"whitespace name", "   ", "123", booking.ErrEmptyCustomer},
			{"name too long", strings.Repeat("a", booking.MaxCustomerLength+1), "123", booking.ErrCustomerTooLong},
			{"empty document", "Alice", "", booking.ErrEmptyDocument},
			{"document too long", "Alice", strings.Repeat("1", booking.MaxDocumentLength+1), booking.ErrDocumentTooLong},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := booking.NewCustomer(tc.cname, tc.document)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("boundary lengths are accepted", func(t *testing.T) {
		_, err := booking.NewCustomer(strings.Repeat("a", booking.MaxCustomerLength), strings.Repeat("1", booking.MaxDocumentLength))
		assert.NoError(t, err)
	})
}

func TestValidateResource(t *testing.T) {
	assert.NoError(t, booking.ValidateResource("gate-1"))
	assert.NoError(t, booking.ValidateResource(strings.Repeat("g", booking.MaxResourceLength)))
	assert.ErrorIs(t, booking.ValidateResource(""), booking.ErrEmptyResource)
	assert.ErrorIs(t, booking.ValidateResource("   "), booking.ErrEmptyResource)
	assert.ErrorIs(t, booking.ValidateResource(strings.Repeat("g", booking.MaxResourceLength+1)), booking.ErrResourceTooLong)
}
