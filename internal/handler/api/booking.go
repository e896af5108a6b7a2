package api

import (
	"net/http"

	reqdto "access-scheduler/internal/handler/dto/request"
	resdto "access-scheduler/internal/handler/dto/response"
	"access-scheduler/internal/pkg/config"
	"access-scheduler/internal/pkg/errs"
	"access-scheduler/internal/usecase/commands"
	"access-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const timezoneHeader = "X-Client-TimeZone"

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	defaultTimezone string
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries, cfg config.Config) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
		defaultTimezone: cfg.Booking.DefaultTimezone,
	}
}

// @Summary Create booking
// @Description Reserve a time window on a resource
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Client-TimeZone header string false "IANA timezone of the submitted times"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} resdto.ConflictResponse
// @Router /book [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	start, end, err := req.Times()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	cmd := commands.CreateBookingCommand{
		Resource:     req.Resource,
		CustomerName: req.CustomerName,
		Document:     req.Document,
		Start:        start,
		End:          end,
		TimezoneID:   h.clientTimezone(c),
	}

	view, conflict, err := h.bookingCommands.CreateBooking(c.Request.Context(), cmd)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidTimezone):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid timezone",
			})
		case errs.Is(err, commands.ErrInvalidBookingInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking request",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	if conflict != nil {
		c.JSON(http.StatusConflict, resdto.FromConflictResult(conflict))
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Param X-Client-TimeZone header string false "IANA timezone for rendered times"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /book/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id, h.clientTimezone(c))
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errs.Is(err, queries.ErrInvalidTimezone):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid timezone",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a booking by ID
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /book/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	removed, err := h.bookingCommands.CancelBooking(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) clientTimezone(c *gin.Context) string {
	if tz := c.GetHeader(timezoneHeader); tz != "" {
		return tz
	}
	return h.defaultTimezone
}
