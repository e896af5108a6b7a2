// Package timezone resolves IANA timezone identifiers for callers that submit
// wall-clock times. Resolution is an injected collaborator so tests can
// substitute deterministic fixed offsets.
package timezone

import (
	"sync"
	"time"

	"access-scheduler/internal/pkg/errs"
)

var ErrUnknownTimezone = errs.New("unknown timezone id")

type Resolver interface {
	IsValid(id string) bool
	Location(id string) (*time.Location, error)
	// ToUTC reinterprets the wall-clock components of local in the named zone
	// and returns the corresponding UTC instant.
	ToUTC(local time.Time, id string) (time.Time, error)
	// FromUTC renders a UTC instant in the named zone.
	FromUTC(t time.Time, id string) (time.Time, error)
}

// SystemResolver resolves against the platform tzdata via time.LoadLocation.
// Lookups are cached; tzdata never changes within a process lifetime.
type SystemResolver struct {
	mu    sync.RWMutex
	cache map[string]*time.Location
}

func NewSystemResolver() *SystemResolver {
	return &SystemResolver{cache: make(map[string]*time.Location)}
}

func (r *SystemResolver) Location(id string) (*time.Location, error) {
	r.mu.RLock()
	loc, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownTimezone)
	}

	r.mu.Lock()
	r.cache[id] = loc
	r.mu.Unlock()
	return loc, nil
}

func (r *SystemResolver) IsValid(id string) bool {
	if id == "" {
		return false
	}
	_, err := r.Location(id)
	return err == nil
}

func (r *SystemResolver) ToUTC(local time.Time, id string) (time.Time, error) {
	loc, err := r.Location(id)
	if err != nil {
		return time.Time{}, err
	}
	return rebuildIn(local, loc).UTC(), nil
}

func (r *SystemResolver) FromUTC(t time.Time, id string) (time.Time, error) {
	loc, err := r.Location(id)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// FixedResolver maps every id it knows to a fixed UTC offset. Test double.
type FixedResolver struct {
	Zones map[string]int // id -> offset seconds east of UTC
}

func NewFixedResolver(zones map[string]int) *FixedResolver {
	return &FixedResolver{Zones: zones}
}

func (r *FixedResolver) Location(id string) (*time.Location, error) {
	offset, ok := r.Zones[id]
	if !ok {
		return nil, ErrUnknownTimezone
	}
	return time.FixedZone(id, offset), nil
}

func (r *FixedResolver) IsValid(id string) bool {
	_, ok := r.Zones[id]
	return ok
}

func (r *FixedResolver) ToUTC(local time.Time, id string) (time.Time, error) {
	loc, err := r.Location(id)
	if err != nil {
		return time.Time{}, err
	}
	return rebuildIn(local, loc).UTC(), nil
}

func (r *FixedResolver) FromUTC(t time.Time, id string) (time.Time, error) {
	loc, err := r.Location(id)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

func rebuildIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
