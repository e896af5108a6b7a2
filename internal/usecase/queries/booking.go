package queries

import (
	"context"

	"access-scheduler/internal/domain/booking"
	"access-scheduler/internal/infra"
	"access-scheduler/internal/pkg/errs"
	"access-scheduler/internal/pkg/timezone"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

type BookingFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, tzID string) (*BookingView, error)
}

type bookingQueriesImpl struct {
	finder   BookingFinder
	resolver timezone.Resolver
}

func NewBookingQueries(finder BookingFinder, resolver timezone.Resolver) BookingQueries {
	return &bookingQueriesImpl{finder: finder, resolver: resolver}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, tzID string) (*BookingView, error) {
	if !q.resolver.IsValid(tzID) {
		return nil, ErrInvalidTimezone
	}

	b, err := q.finder.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, err
	}

	return ViewFromBooking(b, tzID, q.resolver), nil
}

// ViewFromBooking projects the entity into its public shape with times in the
// caller's timezone. The resolver was validated upstream.
func ViewFromBooking(b *booking.Booking, tzID string, resolver timezone.Resolver) *BookingView {
	start, err := resolver.FromUTC(b.Window().Start(), tzID)
	if err != nil {
		start = b.Window().Start()
	}
	end, err := resolver.FromUTC(b.Window().End(), tzID)
	if err != nil {
		end = b.Window().End()
	}

	return &BookingView{
		ID:           b.ID(),
		Resource:     b.Resource(),
		CustomerName: b.Customer().Name(),
		Document:     b.Customer().Document(),
		Start:        start,
		End:          end,
		CreatedAt:    b.CreatedAt(),
	}
}
