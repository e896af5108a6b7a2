package booking

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidWindow   = errors.New("window start must be before end")
	ErrEmptyResource   = errors.New("resource is required")
	ErrResourceTooLong = errors.New("resource exceeds maximum length")
	ErrEmptyCustomer   = errors.New("customer name is required")
	ErrCustomerTooLong = errors.New("customer name exceeds maximum length")
	ErrEmptyDocument   = errors.New("document is required")
	ErrDocumentTooLong = errors.New("document exceeds maximum length")
)

const (
	MaxResourceLength = 50
	MaxCustomerLength = 100
	MaxDocumentLength = 20
)

// TimeWindow is a half-open interval [start, end) on the absolute (UTC)
// timeline.
type TimeWindow struct {
	start time.Time
	end   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{start: start.UTC(), end: end.UTC()}, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

func (w TimeWindow) IsZero() bool {
	return w.start.IsZero() && w.end.IsZero()
}

// Overlaps reports whether two windows share any instant. Touching endpoints
// do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && w.end.After(other.start)
}

// ClampTo returns the intersection of the two windows, or the zero window when
// they are disjoint.
func (w TimeWindow) ClampTo(bounds TimeWindow) TimeWindow {
	start := w.start
	if bounds.start.After(start) {
		start = bounds.start
	}
	end := w.end
	if bounds.end.Before(end) {
		end = bounds.end
	}
	if !start.Before(end) {
		return TimeWindow{}
	}
	return TimeWindow{start: start, end: end}
}

// Customer carries the pass-through requester attributes. Not a scheduling
// concept; validated here so nothing malformed reaches storage.
type Customer struct {
	name     string
	document string
}

func NewCustomer(name, document string) (Customer, error) {
	name = strings.TrimSpace(name)
	document = strings.TrimSpace(document)

	if name == "" {
		return Customer{}, ErrEmptyCustomer
	}
	if len(name) > MaxCustomerLength {
		return Customer{}, ErrCustomerTooLong
	}
	if document == "" {
		return Customer{}, ErrEmptyDocument
	}
	if len(document) > MaxDocumentLength {
		return Customer{}, ErrDocumentTooLong
	}

	return Customer{name: name, document: document}, nil
}

func (c Customer) Name() string {
	return c.name
}

func (c Customer) Document() string {
	return c.document
}

func ValidateResource(resource string) error {
	if strings.TrimSpace(resource) == "" {
		return ErrEmptyResource
	}
	if len(resource) > MaxResourceLength {
		return ErrResourceTooLong
	}
	return nil
}
