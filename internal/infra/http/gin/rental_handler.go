package ginserver

import (
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"rentwear/internal/app/dto"
	"rentwear/internal/app/session"
	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/pricing"
	"rentwear/internal/domain/shared/money"
)

// RentalHandler prices rentals through the caller's session so the loyalty
// profile feeds the quote.
type RentalHandler struct {
	Sessions      *session.Manager
	SessionHeader string
}

type quoteRequest struct {
	ProductID string    `json:"product_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

func (h RentalHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}
	quote, err := sess.Quote(c.Request.Context(), catalog.ProductID(req.ProductID), req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

func (h RentalHandler) OptimalDuration(c *gin.Context) {
	raw := c.Query("buy_price")
	buyPrice, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || buyPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "buy_price must be a non-negative integer"})
		return
	}
	advice := pricing.OptimalDuration(money.Rupees(buyPrice))
	c.JSON(http.StatusOK, dto.DurationAdviceResponse{Recommended: advice.Recommended, Minimum: advice.Minimum})
}

func (h RentalHandler) session(c *gin.Context) (*session.Session, bool) {
	sess, err := sessionFromRequest(c, h.Sessions, h.SessionHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return sess, true
}

var _ RentalHTTP = RentalHandler{}
