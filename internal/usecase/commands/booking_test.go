//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"access-scheduler/internal/domain/booking"
	"access-scheduler/internal/infra"
	"access-scheduler/internal/pkg/clock"
	"access-scheduler/internal/pkg/errs"
	"access-scheduler/internal/pkg/timezone"
	"access-scheduler/internal/usecase/commands"
	"access-scheduler/tests/common/builder"
	commandsmock "access-scheduler/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockRepo         *commandsmock.MockBookingRepository
	mockReads        *commandsmock.MockBookingReads
	mockAvailability *commandsmock.MockAvailabilityService
	mockCache        *commandsmock.MockCacheInvalidator
	clock            *clock.MockClock
	commands         commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = commandsmock.NewMockBookingRepository(s.mockCtrl)
	s.mockReads = commandsmock.NewMockBookingReads(s.mockCtrl)
	s.mockAvailability = commandsmock.NewMockAvailabilityService(s.mockCtrl)
	s.mockCache = commandsmock.NewMockCacheInvalidator(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC))

	resolver := timezone.NewFixedResolver(map[string]int{
		"UTC":   0,
		"UTC-3": -3 * 60 * 60,
	})

	s.commands = commands.NewBookingCommands(
		s.mockRepo, s.mockReads, s.mockAvailability, s.mockCache, resolver, s.clock)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) cmd() commands.CreateBookingCommand {
	return builder.NewBookingBuilder().BuildCommand()
}

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	ctx := context.Background()

	s.Run("free window is persisted and the cache invalidated", func() {
		cmd := s.cmd()

		s.mockReads.EXPECT().
			FindConflict(ctx, "gate-1", gomock.Any()).
			Return(nil, nil)
		s.mockRepo.EXPECT().
			Insert(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
				return booking.ReconstructBooking(
					b.ID(), b.Resource(), b.Customer(), b.Window(), s.clock.Now(), uuid.New()), nil
			})
		s.mockCache.EXPECT().Invalidate(ctx, "gate-1")

		view, conflict, err := s.commands.CreateBooking(ctx, cmd)
		require.NoError(s.T(), err)
		require.Nil(s.T(), conflict)
		require.NotNil(s.T(), view)
		assert.Equal(s.T(), "gate-1", view.Resource)
		assert.True(s.T(), view.Start.Equal(cmd.Start))
	})

	s.Run("wall-clock times are reinterpreted in the caller timezone", func() {
		cmd := s.cmd()
		cmd.TimezoneID = "UTC-3"

		var inserted *booking.Booking
		s.mockReads.EXPECT().
			FindConflict(ctx, "gate-1", gomock.Any()).
			Return(nil, nil)
		s.mockRepo.EXPECT().
			Insert(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
				inserted = b
				return booking.ReconstructBooking(
					b.ID(), b.Resource(), b.Customer(), b.Window(), s.clock.Now(), uuid.New()), nil
			})
		s.mockCache.EXPECT().Invalidate(ctx, "gate-1")

		_, _, err := s.commands.CreateBooking(ctx, cmd)
		require.NoError(s.T(), err)
		require.NotNil(s.T(), inserted)
		// 10:00 wall clock at UTC-3 is 13:00 UTC.
		assert.True(s.T(), inserted.Window().Start().Equal(cmd.Start.Add(3*time.Hour)))
	})

	s.Run("advisory pre-check conflict returns alternatives without a write", func() {
		cmd := s.cmd()
		winner := builder.NewBookingBuilder().BuildReconstructed()

		altStart := cmd.Start.Add(time.Hour)
		altWindow, err := booking.NewTimeWindow(altStart, altStart.Add(30*time.Minute))
		require.NoError(s.T(), err)

		s.mockReads.EXPECT().
			FindConflict(ctx, "gate-1", gomock.Any()).
			Return(winner, nil)
		s.mockAvailability.EXPECT().
			SlotsForDay(ctx, "gate-1", gomock.Any(), 30*time.Minute).
			Return([]booking.Slot{{Resource: "gate-1", Window: altWindow}}, nil)

		view, conflict, err := s.commands.CreateBooking(ctx, cmd)
		require.NoError(s.T(), err)
		require.Nil(s.T(), view)
		require.NotNil(s.T(), conflict)
		assert.NotEmpty(s.T(), conflict.Message)
		require.NotNil(s.T(), conflict.ConflictWith)
		assert.Equal(s.T(), winner.ID(), conflict.ConflictWith.ID)
		require.Len(s.T(), conflict.Alternatives, 1)
		assert.True(s.T(), conflict.Alternatives[0].Start.Equal(altStart))
	})

	s.Run("race loser gets the same conflict shape post-hoc", func() {
		cmd := s.cmd()
		winner := builder.NewBookingBuilder().BuildReconstructed()

		gomock.InOrder(
			s.mockReads.EXPECT().
				FindConflict(ctx, "gate-1", gomock.Any()).
				Return(nil, nil),
			s.mockRepo.EXPECT().
				Insert(ctx, gomock.Any()).
				Return(nil, infra.WrapRepoErr("insert", assert.AnError, infra.KindConflict)),
			s.mockReads.EXPECT().
				FindConflict(ctx, "gate-1", gomock.Any()).
				Return(winner, nil),
		)
		s.mockAvailability.EXPECT().
			SlotsForDay(ctx, "gate-1", gomock.Any(), 30*time.Minute).
			Return(nil, nil)

		view, conflict, err := s.commands.CreateBooking(ctx, cmd)
		require.NoError(s.T(), err)
		require.Nil(s.T(), view)
		require.NotNil(s.T(), conflict)
		assert.Equal(s.T(), winner.ID(), conflict.ConflictWith.ID)
		assert.Empty(s.T(), conflict.Alternatives)
	})

	s.Run("alternatives failure still yields the conflict", func() {
		cmd := s.cmd()
		winner := builder.NewBookingBuilder().BuildReconstructed()

		s.mockReads.EXPECT().
			FindConflict(ctx, "gate-1", gomock.Any()).
			Return(winner, nil)
		s.mockAvailability.EXPECT().
			SlotsForDay(ctx, "gate-1", gomock.Any(), 30*time.Minute).
			Return(nil, assert.AnError)

		_, conflict, err := s.commands.CreateBooking(ctx, cmd)
		require.NoError(s.T(), err)
		require.NotNil(s.T(), conflict)
		assert.Empty(s.T(), conflict.Alternatives)
	})

	s.Run("unknown timezone fails before any read", func() {
		cmd := s.cmd()
		cmd.TimezoneID = "Mars/Olympus"

		_, _, err := s.commands.CreateBooking(ctx, cmd)
		assert.ErrorIs(s.T(), err, commands.ErrInvalidTimezone)
	})

	s.Run("inverted window fails before any read", func() {
		cmd := s.cmd()
		cmd.Start, cmd.End = cmd.End, cmd.Start

		_, _, err := s.commands.CreateBooking(ctx, cmd)
		assert.True(s.T(), errs.Is(err, commands.ErrInvalidBookingInput), "got %v", err)
	})

	s.Run("window in the past fails before any read", func() {
		cmd := s.cmd()
		defer s.clock.Set(s.clock.Now())
		s.clock.Set(cmd.Start.Add(time.Hour))

		_, _, err := s.commands.CreateBooking(ctx, cmd)
		assert.True(s.T(), errs.Is(err, commands.ErrInvalidBookingInput), "got %v", err)
	})

	s.Run("pre-check infrastructure failure surfaces as database error", func() {
		cmd := s.cmd()

		s.mockReads.EXPECT().
			FindConflict(ctx, "gate-1", gomock.Any()).
			Return(nil, infra.WrapRepoErr("query", assert.AnError, infra.KindDBFailure))

		_, _, err := s.commands.CreateBooking(ctx, cmd)
		assert.True(s.T(), errs.Is(err, commands.ErrDatabaseOperationFailed), "got %v", err)
	})
}

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	ctx := context.Background()

	s.Run("existing booking is removed and cache invalidated", func() {
		existing := builder.NewBookingBuilder().BuildReconstructed()

		s.mockReads.EXPECT().FindByID(ctx, existing.ID()).Return(existing, nil)
		s.mockRepo.EXPECT().Delete(ctx, existing.ID()).Return(true, nil)
		s.mockCache.EXPECT().Invalidate(ctx, "gate-1")

		removed, err := s.commands.CancelBooking(ctx, existing.ID())
		require.NoError(s.T(), err)
		assert.True(s.T(), removed)
	})

	s.Run("unknown id reports false, not an error", func() {
		id := uuid.New()
		s.mockReads.EXPECT().
			FindByID(ctx, id).
			Return(nil, infra.WrapRepoErr("find", assert.AnError, infra.KindNotFound))

		removed, err := s.commands.CancelBooking(ctx, id)
		require.NoError(s.T(), err)
		assert.False(s.T(), removed)
	})

	s.Run("lost delete race reports false without invalidation", func() {
		existing := builder.NewBookingBuilder().BuildReconstructed()

		s.mockReads.EXPECT().FindByID(ctx, existing.ID()).Return(existing, nil)
		s.mockRepo.EXPECT().Delete(ctx, existing.ID()).Return(false, nil)

		removed, err := s.commands.CancelBooking(ctx, existing.ID())
		require.NoError(s.T(), err)
		assert.False(s.T(), removed)
	})

	s.Run("delete failure surfaces as database error", func() {
		existing := builder.NewBookingBuilder().BuildReconstructed()

		s.mockReads.EXPECT().FindByID(ctx, existing.ID()).Return(existing, nil)
		s.mockRepo.EXPECT().
			Delete(ctx, existing.ID()).
			Return(false, infra.WrapRepoErr("delete", assert.AnError, infra.KindDBFailure))

		_, err := s.commands.CancelBooking(ctx, existing.ID())
		assert.True(s.T(), errs.Is(err, commands.ErrDatabaseOperationFailed), "got %v", err)
	})
}
