package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"rentwear/internal/app/session"
	"rentwear/internal/domain/booking"
	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/loyalty"
	"rentwear/internal/domain/pricing"
	"rentwear/internal/domain/shared/daterange"
)

// respondError maps domain conditions onto HTTP statuses. Everything in the
// taxonomy is a recoverable, reported condition, never a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, booking.ErrBookingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pricing.ErrInvalidDateRange), errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, loyalty.ErrInvalidRating):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrNoActiveDraft), errors.Is(err, session.ErrUnavailableDates),
		errors.Is(err, booking.ErrInvalidTransition):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
