package commands

import (
	"context"
	"log/slog"
	"time"

	"access-scheduler/internal/domain/booking"
	"access-scheduler/internal/infra"
	"access-scheduler/internal/pkg/clock"
	"access-scheduler/internal/pkg/errs"
	"access-scheduler/internal/pkg/metrics"
	"access-scheduler/internal/pkg/timezone"
	"access-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimezone         = errs.New("invalid timezone id")
	ErrInvalidBookingInput     = errs.New("invalid booking input")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const conflictMessage = "conflict: the requested window overlaps an existing booking"

// CreateBookingCommand carries the caller's request. Start and End are
// wall-clock times interpreted in TimezoneID.
type CreateBookingCommand struct {
	Resource     string
	CustomerName string
	Document     string
	Start        time.Time
	End          time.Time
	TimezoneID   string
}

// ConflictResult is the structured Conflicted outcome: the committed booking
// that won the window (when known) and up to three replacement slots nearest
// the rejected start.
type ConflictResult struct {
	Message      string
	ConflictWith *queries.BookingView
	Alternatives []queries.SlotView
}

type BookingCommands interface {
	// CreateBooking reserves the window or explains why it cannot. Exactly
	// one of the returns is set on success: a confirmed view, or a conflict
	// result.
	CreateBooking(ctx context.Context, cmd CreateBookingCommand) (*queries.BookingView, *ConflictResult, error)
	// CancelBooking removes the booking, reporting whether it existed.
	CancelBooking(ctx context.Context, id uuid.UUID) (bool, error)
}

type bookingCommandsImpl struct {
	repo         BookingRepository
	reads        BookingReads
	availability AvailabilityService
	cache        CacheInvalidator
	resolver     timezone.Resolver
	clock        clock.Clock
}

func NewBookingCommands(
	repo BookingRepository,
	reads BookingReads,
	availability AvailabilityService,
	cache CacheInvalidator,
	resolver timezone.Resolver,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		repo:         repo,
		reads:        reads,
		availability: availability,
		cache:        cache,
		resolver:     resolver,
		clock:        clk,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, cmd CreateBookingCommand) (*queries.BookingView, *ConflictResult, error) {
	entity, err := c.buildBooking(cmd)
	if err != nil {
		metrics.IncBookingCreated(metrics.OutcomeRejected)
		return nil, nil, err
	}

	// Advisory fast path: reject without a write attempt when the window is
	// already taken. Exclusivity itself comes from the storage constraint.
	conflicting, err := c.reads.FindConflict(ctx, entity.Resource(), entity.Window())
	if err != nil {
		metrics.IncBookingCreated(metrics.OutcomeFailed)
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if conflicting != nil {
		result := c.buildConflictResult(ctx, entity, conflicting, cmd.TimezoneID)
		metrics.IncBookingCreated(metrics.OutcomeConflicted)
		return nil, result, nil
	}

	created, err := c.repo.Insert(ctx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// A concurrent writer committed first. Same outcome as the
			// pre-check, discovered post-hoc against the now-current state.
			winner, findErr := c.reads.FindConflict(ctx, entity.Resource(), entity.Window())
			if findErr != nil {
				slog.Warn("failed to load winning booking after race", "error", findErr.Error())
			}
			result := c.buildConflictResult(ctx, entity, winner, cmd.TimezoneID)
			metrics.IncBookingCreated(metrics.OutcomeConflicted)
			return nil, result, nil
		}
		metrics.IncBookingCreated(metrics.OutcomeFailed)
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c.cache.Invalidate(ctx, created.Resource())
	metrics.IncBookingCreated(metrics.OutcomeConfirmed)

	return queries.ViewFromBooking(created, cmd.TimezoneID, c.resolver), nil, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	existing, err := c.reads.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, nil
		}
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	removed, err := c.repo.Delete(ctx, id)
	if err != nil {
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if removed {
		c.cache.Invalidate(ctx, existing.Resource())
		metrics.IncBookingCancelled()
	}

	return removed, nil
}

func (c *bookingCommandsImpl) buildBooking(cmd CreateBookingCommand) (*booking.Booking, error) {
	if !c.resolver.IsValid(cmd.TimezoneID) {
		return nil, ErrInvalidTimezone
	}

	startUTC, err := c.resolver.ToUTC(cmd.Start, cmd.TimezoneID)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	endUTC, err := c.resolver.ToUTC(cmd.End, cmd.TimezoneID)
	if err != nil {
		return nil, ErrInvalidTimezone
	}

	window, err := booking.NewTimeWindow(startUTC, endUTC)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	customer, err := booking.NewCustomer(cmd.CustomerName, cmd.Document)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	entity, err := booking.NewBooking(c.clock.Now(), cmd.Resource, customer, window)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	return entity, nil
}

// buildConflictResult assembles the Conflicted outcome: alternatives come
// from the calendar day containing the rejected start, ranked by proximity to
// it. Fewer than the limit is fine; an empty list is still a valid result.
func (c *bookingCommandsImpl) buildConflictResult(ctx context.Context, rejected *booking.Booking, winner *booking.Booking, tzID string) *ConflictResult {
	result := &ConflictResult{Message: conflictMessage}
	if winner != nil {
		result.ConflictWith = queries.ViewFromBooking(winner, tzID, c.resolver)
	}

	loc, err := c.resolver.Location(tzID)
	if err != nil {
		return result
	}

	localStart := rejected.Window().Start().In(loc)
	day := booking.NewDay(localStart.Year(), localStart.Month(), localStart.Day(), loc)

	slots, err := c.availability.SlotsForDay(ctx, rejected.Resource(), day, rejected.Window().Duration())
	if err != nil {
		slog.Warn("failed to compute alternative slots", "resource", rejected.Resource(), "error", err.Error())
		return result
	}

	ranked := booking.RankAlternatives(slots, rejected.Window().Start(), booking.DefaultAlternativeLimit)
	result.Alternatives = make([]queries.SlotView, len(ranked))
	for i, s := range ranked {
		result.Alternatives[i] = queries.SlotView{
			Resource: s.Resource,
			Start:    s.Window.Start().In(loc),
			End:      s.Window.End().In(loc),
		}
	}

	return result
}
