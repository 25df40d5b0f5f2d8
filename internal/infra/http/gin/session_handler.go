package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"rentwear/internal/app/dto"
	"rentwear/internal/app/session"
	"rentwear/internal/domain/booking"
	"rentwear/internal/domain/catalog"
)

const defaultSessionHeader = "X-Session-ID"

func sessionFromRequest(c *gin.Context, manager *session.Manager, header string) (*session.Session, error) {
	if manager == nil {
		return nil, errors.New("sessions unavailable")
	}
	if header == "" {
		header = defaultSessionHeader
	}
	id := c.GetHeader(header)
	if id == "" {
		return nil, errors.New("missing session header")
	}
	return manager.Get(c.Request.Context(), id)
}

// SessionHandler exposes the draft/booking lifecycle of one session.
type SessionHandler struct {
	Sessions      *session.Manager
	SessionHeader string
}

type saveDraftRequest struct {
	ProductID string    `json:"product_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date"`
}

func (h SessionHandler) SaveDraft(c *gin.Context) {
	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}
	draft, err := sess.SaveDraft(c.Request.Context(), catalog.ProductID(req.ProductID), req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDraftResponse(draft))
}

func (h SessionHandler) GetDraft(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewDraftResponse(sess.Draft()))
}

func (h SessionHandler) ClearDraft(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.ClearDraft()
	c.Status(http.StatusNoContent)
}

type createBookingRequest struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
}

func (h SessionHandler) CreateBooking(c *gin.Context) {
	// Body is optional; an empty request books the current draft as-is.
	var req createBookingRequest
	_ = c.ShouldBindJSON(&req)
	sess, ok := h.session(c)
	if !ok {
		return
	}
	id, err := sess.CreateBooking(c.Request.Context(), catalog.ProductID(req.ProductID), req.ProductName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking_id": string(id)})
}

func (h SessionHandler) ListBookings(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	list, err := sess.Bookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.NewBookingResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (h SessionHandler) CancelBooking(c *gin.Context) {
	var req cancelBookingRequest
	_ = c.ShouldBindJSON(&req)
	if req.Reason == "" {
		req.Reason = "user_cancelled"
	}
	h.transition(c, func(sess *session.Session, id booking.BookingID) error {
		return sess.CancelBooking(c.Request.Context(), id, req.Reason)
	})
}

func (h SessionHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, func(sess *session.Session, id booking.BookingID) error {
		return sess.ConfirmBooking(c.Request.Context(), id)
	})
}

func (h SessionHandler) ActivateBooking(c *gin.Context) {
	h.transition(c, func(sess *session.Session, id booking.BookingID) error {
		return sess.ActivateBooking(c.Request.Context(), id)
	})
}

func (h SessionHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, func(sess *session.Session, id booking.BookingID) error {
		return sess.CompleteBooking(c.Request.Context(), id)
	})
}

func (h SessionHandler) transition(c *gin.Context, step func(*session.Session, booking.BookingID) error) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := step(sess, booking.BookingID(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h SessionHandler) Savings(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	total, err := sess.TotalSavings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SavingsResponse{Currency: total.Currency, TotalSavings: total.Amount})
}

func (h SessionHandler) Loyalty(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	profile := sess.Profile()
	c.JSON(http.StatusOK, dto.NewLoyaltyProgressResponse(profile.Tier, sess.LoyaltyProgress()))
}

type rateRequest struct {
	Rating int `json:"rating" binding:"required"`
}

func (h SessionHandler) Rate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := sess.RecordRating(c.Request.Context(), req.Rating); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	sess, err := sessionFromRequest(c, h.Sessions, h.SessionHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return sess, true
}

var _ SessionHTTP = SessionHandler{}
