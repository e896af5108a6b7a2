package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"access-scheduler/internal/domain/booking"
	"access-scheduler/internal/pkg/clock"
	"access-scheduler/internal/pkg/errs"
	"access-scheduler/internal/pkg/metrics"
	"access-scheduler/internal/pkg/timezone"
)

var (
	ErrInvalidTimezone = errs.New("invalid timezone id")
	ErrInvalidDuration = errs.New("invalid duration")
	ErrInvalidResource = errs.New("invalid resource")
)

// BookingLister feeds the availability walk with the committed bookings of
// one resource, ordered by start ascending.
type BookingLister interface {
	ListOverlapping(ctx context.Context, resource string, from, to time.Time) ([]*booking.Booking, error)
}

// AvailabilityCache is optional and purely advisory; a miss or failure falls
// through to storage.
type AvailabilityCache interface {
	Get(ctx context.Context, resource, key string) ([]byte, bool)
	Set(ctx context.Context, resource, key string, payload []byte)
}

type AvailabilityQueries interface {
	// FreeSlots lists every bookable slot of the requested duration on the
	// given local calendar date, rendered in the caller's timezone.
	FreeSlots(ctx context.Context, resource string, date time.Time, durationMinutes int, tzID string) ([]SlotView, error)
	// SlotsForDay is the raw domain computation shared with the conflict
	// alternatives path.
	SlotsForDay(ctx context.Context, resource string, day booking.Day, duration time.Duration) ([]booking.Slot, error)
}

type availabilityQueriesImpl struct {
	lister   BookingLister
	resolver timezone.Resolver
	cache    AvailabilityCache
	clock    clock.Clock
}

func NewAvailabilityQueries(lister BookingLister, resolver timezone.Resolver, cache AvailabilityCache, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{
		lister:   lister,
		resolver: resolver,
		cache:    cache,
		clock:    clk,
	}
}

func (q *availabilityQueriesImpl) FreeSlots(ctx context.Context, resource string, date time.Time, durationMinutes int, tzID string) ([]SlotView, error) {
	if err := booking.ValidateResource(resource); err != nil {
		return nil, errs.Mark(err, ErrInvalidResource)
	}
	if err := booking.ValidateDuration(durationMinutes); err != nil {
		return nil, errs.Mark(err, ErrInvalidDuration)
	}
	loc, err := q.resolver.Location(tzID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimezone)
	}

	metrics.IncFreeSlotQueries()

	day := booking.NewDay(date.Year(), date.Month(), date.Day(), loc)

	// The current day's listing depends on the clock: slots that have already
	// started are excluded, and a cached snapshot could resurface one within
	// the TTL. Only other days touch the cache.
	now := q.clock.Now()
	cacheable := now.Before(day.Start) || !now.Before(day.End)

	cacheKey := fmt.Sprintf("%s:%d:%s", date.Format("2006-01-02"), durationMinutes, tzID)
	if cacheable {
		if payload, ok := q.cache.Get(ctx, resource, cacheKey); ok {
			var views []SlotView
			if err := json.Unmarshal(payload, &views); err == nil {
				return views, nil
			}
		}
	}

	slots, err := q.SlotsForDay(ctx, resource, day, time.Duration(durationMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}

	views := make([]SlotView, len(slots))
	for i, s := range slots {
		views[i] = SlotView{
			Resource: s.Resource,
			Start:    s.Window.Start().In(loc),
			End:      s.Window.End().In(loc),
		}
	}

	if cacheable {
		if payload, err := json.Marshal(views); err == nil {
			q.cache.Set(ctx, resource, cacheKey, payload)
		}
	}

	return views, nil
}

func (q *availabilityQueriesImpl) SlotsForDay(ctx context.Context, resource string, day booking.Day, duration time.Duration) ([]booking.Slot, error) {
	existing, err := q.lister.ListOverlapping(ctx, resource, day.Start, day.End)
	if err != nil {
		return nil, err
	}

	windows := make([]booking.TimeWindow, len(existing))
	for i, b := range existing {
		windows[i] = b.Window()
	}

	return booking.FreeSlots(resource, windows, day, duration, q.clock.Now()), nil
}
