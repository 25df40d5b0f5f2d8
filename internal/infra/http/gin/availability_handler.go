package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"rentwear/internal/app/dto"
	"rentwear/internal/domain/availability"
	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/daterange"
)

// AvailabilityHandler answers date-overlap questions straight off the
// product's calendar.
type AvailabilityHandler struct {
	Products  catalog.Repository
	Calendars availability.Repository
}

func (h AvailabilityHandler) Check(c *gin.Context) {
	start, end, ok := parseDateParams(c)
	if !ok {
		return
	}
	calendar, ok := h.calendar(c)
	if !ok {
		return
	}
	dr, err := daterange.New(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AvailabilityResponse{Available: calendar.CanReserve(dr)})
}

func (h AvailabilityHandler) UnavailableDates(c *gin.Context) {
	calendar, ok := h.calendar(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.UnavailableDatesResponse{Dates: calendar.UnavailableDates()})
}

func (h AvailabilityHandler) calendar(c *gin.Context) (*availability.Calendar, bool) {
	id := catalog.ProductID(c.Param("id"))
	if _, err := h.Products.ByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return nil, false
	}
	calendar, err := h.Calendars.Calendar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return calendar, true
}

func parseDateParams(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		start, err = time.Parse("2006-01-02", c.Query("start"))
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		end, err = time.Parse("2006-01-02", c.Query("end"))
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

var _ AvailabilityHTTP = AvailabilityHandler{}
