package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"rentwear/internal/infra/config"
	"rentwear/internal/infra/obs"
)

type RentalHTTP interface {
	Quote(c *gin.Context)
	OptimalDuration(c *gin.Context)
}

type AvailabilityHTTP interface {
	Check(c *gin.Context)
	UnavailableDates(c *gin.Context)
}

type SessionHTTP interface {
	SaveDraft(c *gin.Context)
	GetDraft(c *gin.Context)
	ClearDraft(c *gin.Context)
	CreateBooking(c *gin.Context)
	ListBookings(c *gin.Context)
	CancelBooking(c *gin.Context)
	ConfirmBooking(c *gin.Context)
	ActivateBooking(c *gin.Context)
	CompleteBooking(c *gin.Context)
	Savings(c *gin.Context)
	Loyalty(c *gin.Context)
	Rate(c *gin.Context)
}

type Handlers struct {
	Rental       RentalHTTP
	Availability AvailabilityHTTP
	Session      SessionHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Session-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Rental != nil {
		api.POST("/rentals/quote", h.Rental.Quote)
		api.GET("/rentals/optimal-duration", h.Rental.OptimalDuration)
	}
	if h.Availability != nil {
		api.GET("/products/:id/availability", h.Availability.Check)
		api.GET("/products/:id/unavailable-dates", h.Availability.UnavailableDates)
	}
	if h.Session != nil {
		api.PUT("/session/draft", h.Session.SaveDraft)
		api.GET("/session/draft", h.Session.GetDraft)
		api.DELETE("/session/draft", h.Session.ClearDraft)
		api.POST("/bookings", h.Session.CreateBooking)
		api.GET("/bookings", h.Session.ListBookings)
		api.POST("/bookings/:id/cancel", h.Session.CancelBooking)
		api.POST("/bookings/:id/confirm", h.Session.ConfirmBooking)
		api.POST("/bookings/:id/activate", h.Session.ActivateBooking)
		api.POST("/bookings/:id/complete", h.Session.CompleteBooking)
		meGroup := api.Group("/me")
		meGroup.GET("/savings", h.Session.Savings)
		meGroup.GET("/loyalty", h.Session.Loyalty)
		meGroup.POST("/rating", h.Session.Rate)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
