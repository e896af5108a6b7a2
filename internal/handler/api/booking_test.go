//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"access-scheduler/internal/handler/api"
	resdto "access-scheduler/internal/handler/dto/response"
	"access-scheduler/internal/pkg/config"
	"access-scheduler/internal/pkg/errs"
	"access-scheduler/internal/usecase/commands"
	"access-scheduler/internal/usecase/queries"
	"access-scheduler/tests/common/builder"
	"access-scheduler/tests/common/httptest"
	"access-scheduler/tests/common/testutil"
	commandsmock "access-scheduler/tests/mock/commands"
	queriesmock "access-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries, config.NewTestConfig())

	s.router.POST("/book", s.handler.CreateBooking)
	s.router.GET("/book/:id", s.handler.GetBooking)
	s.router.DELETE("/book/:id", s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/book"

	s.Run("free window returns 201 with the booking", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		view := builder.NewBookingBuilder().BuildView()

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			Return(view, nil, nil)

		w := httptest.PerformRequest(t, s.router, http.MethodPost, url, reqBody, "")

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &got)
		require.Equal(t, view.ID, got.ID)
		require.Equal(t, "gate-1", got.Resource)
	})

	s.Run("timezone header is forwarded to the command", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		view := builder.NewBookingBuilder().BuildView()

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, cmd commands.CreateBookingCommand) (*queries.BookingView, *commands.ConflictResult, error) {
				require.Equal(t, "America/Recife", cmd.TimezoneID)
				return view, nil, nil
			})

		w := httptest.PerformRequestWithHeaders(t, s.router, http.MethodPost, url, reqBody, "",
			map[string]string{"X-Client-TimeZone": "America/Recife"})
		require.Equal(t, http.StatusCreated, w.Code)
	})

	s.Run("missing header falls back to the configured default", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		view := builder.NewBookingBuilder().BuildView()

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, cmd commands.CreateBookingCommand) (*queries.BookingView, *commands.ConflictResult, error) {
				require.Equal(t, "America/Sao_Paulo", cmd.TimezoneID)
				return view, nil, nil
			})

		w := httptest.PerformRequest(t, s.router, http.MethodPost, url, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code)
	})

	s.Run("conflict returns 409 with alternatives", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		conflictWith := builder.NewBookingBuilder().BuildView()
		result := &commands.ConflictResult{
			Message:      "conflict",
			ConflictWith: conflictWith,
			Alternatives: []queries.SlotView{{
				Resource: "gate-1",
				Start:    conflictWith.End,
				End:      conflictWith.End.Add(30 * time.Minute),
			}},
		}

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, result, nil)

		w := httptest.PerformRequest(t, s.router, http.MethodPost, url, reqBody, "")

		require.Equal(t, http.StatusConflict, w.Code)

		var got resdto.ConflictResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
		require.NotNil(t, got.ConflictWith)
		require.Equal(t, conflictWith.ID, got.ConflictWith.ID)
		require.Len(t, got.AlternativeSlots, 1)
	})

	s.Run("validation failures return 400", func() {
		t := s.T()
		base := builder.NewBookingBuilder().BuildCreateRequestDTO()

		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{"missing customer name", testutil.Field("customer_name", nil)},
			{"missing resource", testutil.Field("resource", nil)},
			{"missing portrait", testutil.Field("portrait", nil)},
			{"broken time format", testutil.Field("start", "10 o'clock")},
			{"latitude out of range", testutil.Field("latitude", 91.0)},
			{"longitude out of range", testutil.Field("longitude", -181.0)},
			{"portrait not base64", testutil.Field("portrait", "!!not-base64!!")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(t, base, tc.mutate)
				w := httptest.PerformRequest(t, s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("command input rejection returns 400", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

		// Marked the way the usecase layer returns it, so the status
		// mapping is exercised against the real error shape.
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Mark(errs.New("window start must be before end"), commands.ErrInvalidBookingInput))

		w := httptest.PerformRequest(t, s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid booking request")
	})

	s.Run("infrastructure failure returns 500", func() {
		t := s.T()
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Mark(errs.New("connection reset"), commands.ErrDatabaseOperationFailed))

		w := httptest.PerformRequest(t, s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "")
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("existing booking returns 200", func() {
		t := s.T()
		view := builder.NewBookingBuilder().BuildView()

		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), view.ID, gomock.Any()).
			Return(view, nil)

		w := httptest.PerformRequest(t, s.router, http.MethodGet, "/book/"+view.ID.String(), nil, "")

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, view.ID, got.ID)
	})

	s.Run("unknown id returns 404", func() {
		t := s.T()
		id := uuid.New()

		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), id, gomock.Any()).
			Return(nil, errs.Mark(errs.New("no rows in result set"), queries.ErrBookingNotFound))

		w := httptest.PerformRequest(t, s.router, http.MethodGet, "/book/"+id.String(), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "not found")
	})

	s.Run("malformed id returns 400 without a lookup", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.router, http.MethodGet, "/book/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	s.Run("removed booking returns 204", func() {
		t := s.T()
		id := uuid.New()

		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), id).
			Return(true, nil)

		w := httptest.PerformRequest(t, s.router, http.MethodDelete, "/book/"+id.String(), nil, "")
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Empty(t, w.Body.String())
	})

	s.Run("unknown id returns 404", func() {
		t := s.T()
		id := uuid.New()

		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), id).
			Return(false, nil)

		w := httptest.PerformRequest(t, s.router, http.MethodDelete, "/book/"+id.String(), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "not found")
	})

	s.Run("failure returns 500", func() {
		t := s.T()
		id := uuid.New()

		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), id).
			Return(false, commands.ErrDatabaseOperationFailed)

		w := httptest.PerformRequest(t, s.router, http.MethodDelete, "/book/"+id.String(), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "")
	})
}
