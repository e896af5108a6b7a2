package booking

import (
	"errors"
	"sort"
	"time"
)

var ErrInvalidDuration = errors.New("duration out of range")

const (
	// Working hours are fixed: slots are only ever offered inside
	// [08:00, 18:00) of the caller's timezone.
	WorkingHourStart = 8
	WorkingHourEnd   = 18

	// Slot starts snap to a 30-minute grid in the caller's timezone.
	SlotGridMinutes = 30

	MinDurationMinutes = 15
	MaxDurationMinutes = 480

	// DefaultAlternativeLimit caps how many replacement slots a conflict
	// result carries.
	DefaultAlternativeLimit = 3
)

// Slot is a bookable interval of exact requested duration on a resource,
// aligned to the slot grid.
type Slot struct {
	Resource string
	Window   TimeWindow
}

// Day describes one calendar day of one resource's schedule on the absolute
// timeline. Loc is the caller's timezone; grid alignment is computed in it.
type Day struct {
	Start        time.Time // midnight of the day, UTC
	End          time.Time // midnight of the next day, UTC
	WorkingStart time.Time // 08:00 local, UTC
	WorkingEnd   time.Time // 18:00 local, UTC
	Loc          *time.Location
}

// NewDay derives the day bounds for the given local calendar date. Working
// bounds are wall-clock times, not offsets from midnight: on a DST transition
// day adding 8 elapsed hours to midnight would not land on 08:00 local.
func NewDay(year int, month time.Month, dayOfMonth int, loc *time.Location) Day {
	midnight := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, loc)
	return Day{
		Start:        midnight.UTC(),
		End:          midnight.AddDate(0, 0, 1).UTC(),
		WorkingStart: time.Date(year, month, dayOfMonth, WorkingHourStart, 0, 0, 0, loc).UTC(),
		WorkingEnd:   time.Date(year, month, dayOfMonth, WorkingHourEnd, 0, 0, 0, loc).UTC(),
		Loc:          loc,
	}
}

func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return ErrInvalidDuration
	}
	return nil
}

// FreeSlots enumerates every bookable slot of the requested duration inside
// the day's working hours, skipping the given bookings and anything that
// starts at or before now. Bookings must be ordered by start ascending, as
// returned by the store. The returned slots are ascending, mutually
// non-overlapping, and never overlap a booking.
func FreeSlots(resource string, bookings []TimeWindow, day Day, duration time.Duration, now time.Time) []Slot {
	regionLow := maxTime(day.WorkingStart, day.Start)
	regionHigh := minTime(day.WorkingEnd, day.End)
	if !regionLow.Before(regionHigh) {
		return nil
	}

	var slots []Slot
	cursor := regionLow
	for _, b := range bookings {
		if b.Start().After(cursor) {
			gapEnd := minTime(b.Start(), regionHigh)
			slots = emitSlots(slots, resource, cursor, gapEnd, duration, day.Loc, now)
		}
		cursor = maxTime(cursor, b.End())
	}
	if cursor.Before(regionHigh) {
		slots = emitSlots(slots, resource, cursor, regionHigh, duration, day.Loc, now)
	}

	return slots
}

// emitSlots walks the free region [regionStart, regionEnd] appending one slot
// per grid point while the full duration still fits. The first candidate is
// the grid point at or after regionStart, pushed past now so nothing already
// begun is offered; subsequent candidates restart the grid at or after the
// previous slot's end, which keeps the output non-overlapping for durations
// longer than the grid step.
func emitSlots(slots []Slot, resource string, regionStart, regionEnd time.Time, duration time.Duration, loc *time.Location, now time.Time) []Slot {
	start := alignToGrid(maxTime(regionStart, now), loc)
	if !start.After(now) {
		start = start.Add(SlotGridMinutes * time.Minute)
	}

	for !start.Add(duration).After(regionEnd) {
		slots = append(slots, Slot{
			Resource: resource,
			Window:   TimeWindow{start: start, end: start.Add(duration)},
		})
		start = alignToGrid(start.Add(duration), loc)
	}

	return slots
}

// alignToGrid returns the first instant at or after t whose local wall clock
// falls on the slot grid: minute 0 or 30 is kept, 1-29 rounds up to :30,
// 31-59 rounds up to the next hour.
func alignToGrid(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	overshoot := time.Duration(local.Minute()%SlotGridMinutes)*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())*time.Nanosecond
	if overshoot == 0 {
		return t
	}
	return t.Add(SlotGridMinutes*time.Minute - overshoot)
}

// RankAlternatives orders slots by proximity of their start to the rejected
// start and returns at most limit of them. On an exact distance tie the later
// slot wins: nudging the caller forward beats sending them back.
func RankAlternatives(slots []Slot, rejectedStart time.Time, limit int) []Slot {
	ranked := make([]Slot, len(slots))
	copy(ranked, slots)

	sort.SliceStable(ranked, func(i, j int) bool {
		di := absDuration(ranked[i].Window.Start().Sub(rejectedStart))
		dj := absDuration(ranked[j].Window.Start().Sub(rejectedStart))
		if di != dj {
			return di < dj
		}
		return ranked[i].Window.Start().After(ranked[j].Window.Start())
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
