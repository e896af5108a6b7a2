package commands

import (
	"context"
	"time"

	"access-scheduler/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingRepository is the write side of storage. Insert must enforce the
// no-overlap constraint atomically, independent of any check in this process.
type BookingRepository interface {
	Insert(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BookingReads provides the advisory pre-check against committed state.
type BookingReads interface {
	FindConflict(ctx context.Context, resource string, window booking.TimeWindow) (*booking.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

// AvailabilityService computes the free slots used for conflict alternatives.
type AvailabilityService interface {
	SlotsForDay(ctx context.Context, resource string, day booking.Day, duration time.Duration) ([]booking.Slot, error)
}

// CacheInvalidator drops cached availability for a resource after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, resource string)
}
