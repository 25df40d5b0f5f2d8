package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"rentwear/internal/app/session"
	"rentwear/internal/clock"
	"rentwear/internal/domain/booking"
	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/pricing"
	"rentwear/internal/domain/shared/money"
	"rentwear/internal/infra/broker/kafka"
	"rentwear/internal/infra/config"
	mongodb "rentwear/internal/infra/db/mongo"
	ginserver "rentwear/internal/infra/http/gin"
	"rentwear/internal/infra/obs"
	infraoutbox "rentwear/internal/infra/outbox"
	"rentwear/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	fixturesPath := cfg.ProductFixtures
	if fixturesPath == "" {
		fixturesPath = defaultProductFixturesPath()
	}
	if err := app.loadProductFixtures(ctx, fixturesPath, logger); err != nil {
		logger.Warn("product fixtures load failed", "error", err, "path", fixturesPath)
	}

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	products *memory.ProductRepository
	worker   *infraoutbox.Worker
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	products := memory.NewProductRepository()
	calendars := memory.NewCalendarRepository()
	profiles := memory.NewProfileRepository()
	outboxStore := memory.NewOutbox()

	var bookings booking.Repository = memory.NewBookingRepository()
	ready := func() error { return nil }
	if cfg.StorageMode == "mongo" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		bookings = mongodb.NewBookingRepository(client.DB)
		ready = func() error { return client.Ping(context.Background()) }
		logger.Info("bookings persisted in mongo", "db", cfg.MongoDB)
	}

	rates := pricing.LoadRateCard(cfg.RateCardJSON, logger)
	calculator := pricing.NewCalculator(rates)

	sessions := session.NewManager(session.Deps{
		Products:   products,
		Bookings:   bookings,
		Calendars:  calendars,
		Profiles:   profiles,
		Calculator: calculator,
		Clock:      clock.NewSystem(),
		Outbox:     outboxStore,
		Logger:     logger,
	})

	app := application{
		handlers: ginserver.Handlers{
			Rental:       ginserver.RentalHandler{Sessions: sessions, SessionHeader: cfg.SessionHeader},
			Availability: ginserver.AvailabilityHandler{Products: products, Calendars: calendars},
			Session:      ginserver.SessionHandler{Sessions: sessions, SessionHeader: cfg.SessionHeader},
		},
		products: products,
		ready:    ready,
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, err
		}
		app.worker = &infraoutbox.Worker{
			Store:       outboxStore,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Source:      "app://rentwear",
			Backoff:     cfg.RetryBackoff,
		}
		logger.Info("outbox worker enabled", "brokers", cfg.KafkaBrokers)
	}

	return app, nil
}

type productFixture struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Vendor     string `json:"vendor"`
	Category   string `json:"category"`
	Currency   string `json:"currency"`
	BuyPrice   int64  `json:"buy_price"`
	RentPerDay int64  `json:"rent_per_day"`
}

func (a application) loadProductFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fixtures []productFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return err
	}
	for _, f := range fixtures {
		currency := f.Currency
		if currency == "" {
			currency = money.DefaultCurrency
		}
		product := &catalog.Product{
			ID:         catalog.ProductID(f.ID),
			Name:       f.Name,
			Vendor:     f.Vendor,
			Category:   f.Category,
			BuyPrice:   money.Must(f.BuyPrice, currency),
			RentPerDay: money.Must(f.RentPerDay, currency),
		}
		if err := a.products.Save(ctx, product); err != nil {
			logger.Warn("skipping fixture product", "id", f.ID, "error", err)
		}
	}
	logger.Info("product fixtures loaded", "count", len(fixtures), "path", path)
	return nil
}

func defaultProductFixturesPath() string {
	return filepath.Join("fixtures", "products.json")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
