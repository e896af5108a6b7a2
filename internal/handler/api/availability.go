package api

import (
	"net/http"
	"strconv"
	"time"

	resdto "access-scheduler/internal/handler/dto/response"
	"access-scheduler/internal/pkg/config"
	"access-scheduler/internal/pkg/errs"
	"access-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	dateLayout             = "2006-01-02"
	defaultDurationMinutes = 30
)

type AvailabilityHandler struct {
	availability    queries.AvailabilityQueries
	defaultTimezone string
	defaultResource string
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries, cfg config.Config) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability:    availability,
		defaultTimezone: cfg.Booking.DefaultTimezone,
		defaultResource: cfg.Booking.DefaultResource,
	}
}

// @Summary List free slots
// @Description List bookable slots of the given duration on a local calendar date
// @Tags availability
// @Produce json
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Param duration query int false "Slot duration in minutes" default(30)
// @Param resource query string false "Resource identifier"
// @Param X-Client-TimeZone header string false "IANA timezone of the caller"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Router /free-slots [get]
func (h *AvailabilityHandler) FreeSlots(c *gin.Context) {
	rawDate := c.Query("date")
	if rawDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required parameter: date",
		})
		return
	}
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	duration := defaultDurationMinutes
	if raw := c.Query("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid duration, expected an integer number of minutes",
			})
			return
		}
	}

	resource := c.Query("resource")
	if resource == "" {
		resource = h.defaultResource
	}

	tzID := c.GetHeader(timezoneHeader)
	if tzID == "" {
		tzID = h.defaultTimezone
	}

	views, err := h.availability.FreeSlots(c.Request.Context(), resource, date, duration, tzID)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Duration must be between 15 and 480 minutes",
			})
		case errs.Is(err, queries.ErrInvalidResource):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid resource",
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

	c.JSON(http.StatusOK, resdto.FromSlotViews(views))
}
