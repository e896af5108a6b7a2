package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrWindowInPast = errors.New("window starts in the past")

// PastTolerance absorbs clock skew between callers and the service when
// rejecting windows that start in the past.
const PastTolerance = 5 * time.Minute

// Booking is the persisted reservation of a window on a resource. Bookings
// are created once and never rescheduled; the only mutation is removal.
type Booking struct {
	id           uuid.UUID
	resource     string
	customer     Customer
	window       TimeWindow
	createdAt    time.Time
	versionToken uuid.UUID
}

// NewBooking validates and assembles a booking that has not been persisted
// yet. createdAt and versionToken are owned by the storage layer.
func NewBooking(now time.Time, resource string, customer Customer, window TimeWindow) (*Booking, error) {
	if err := ValidateResource(resource); err != nil {
		return nil, err
	}
	if window.Start().Before(now.Add(-PastTolerance)) {
		return nil, ErrWindowInPast
	}

	return &Booking{
		id:       uuid.New(),
		resource: resource,
		customer: customer,
		window:   window,
	}, nil
}

// ReconstructBooking hydrates a booking from its stored representation
// without revalidating; the row was valid when written.
func ReconstructBooking(
	id uuid.UUID,
	resource string,
	customer Customer,
	window TimeWindow,
	createdAt time.Time,
	versionToken uuid.UUID,
) *Booking {
	return &Booking{
		id:           id,
		resource:     resource,
		customer:     customer,
		window:       window,
		createdAt:    createdAt,
		versionToken: versionToken,
	}
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) Resource() string        { return b.resource }
func (b *Booking) Customer() Customer      { return b.customer }
func (b *Booking) Window() TimeWindow      { return b.window }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) VersionToken() uuid.UUID { return b.versionToken }

// ConflictsWith reports whether another booking on the same resource overlaps
// this one. Bookings on different resources never conflict.
func (b *Booking) ConflictsWith(other *Booking) bool {
	return b.resource == other.resource && b.window.Overlaps(other.window)
}
