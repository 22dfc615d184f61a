package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	resdto "carshare-booking/internal/handler/dto/response"
	"carshare-booking/internal/handler/middleware"
	"carshare-booking/internal/pkg/clock"
	"carshare-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CalendarHandler struct {
	calendarQueries queries.CalendarQueries
	clock           clock.Clock
}

func NewCalendarHandler(calendarQueries queries.CalendarQueries, clock clock.Clock) *CalendarHandler {
	return &CalendarHandler{
		calendarQueries: calendarQueries,
		clock:           clock,
	}
}

// @Summary Car calendar month view
// @Description Day-by-day availability of a car from the viewer's perspective
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param year query int false "Year (defaults to current)"
// @Param month query int false "Month 1-12 (defaults to current)"
// @Success 200 {object} resdto.MonthViewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /cars/{id}/calendar [get]
func (h *CalendarHandler) MonthView(c *gin.Context) {
	viewerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid car ID format",
		})
		return
	}

	now := h.clock.Now()
	year, month, err := h.parseYearMonth(c, now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid year or month",
		})
		return
	}

	view, err := h.calendarQueries.MonthView(c.Request.Context(), carID, viewerID, year, month)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidMonth) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Month must be between 1 and 12",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromMonthView(view))
}

func (h *CalendarHandler) parseYearMonth(c *gin.Context, now time.Time) (int, time.Month, error) {
	year := now.Year()
	month := now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		month = time.Month(parsed)
	}

	return year, month, nil
}
