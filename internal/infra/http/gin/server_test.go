package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/app/dto"
	"rentwear/internal/app/session"
	"rentwear/internal/clock"
	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/pricing"
	"rentwear/internal/domain/shared/money"
	"rentwear/internal/infra/config"
	"rentwear/internal/infra/obs"
	"rentwear/internal/infra/storage/memory"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	products := memory.NewProductRepository()
	calendars := memory.NewCalendarRepository()
	require.NoError(t, products.Save(context.Background(), &catalog.Product{
		ID:         "prd-anarkali-01",
		Name:       "Embroidered Anarkali Gown",
		Vendor:     "House of Meera",
		Category:   "ethnic-wear",
		BuyPrice:   money.Rupees(5000),
		RentPerDay: money.Rupees(300),
	}))

	manager := session.NewManager(session.Deps{
		Products:   products,
		Bookings:   memory.NewBookingRepository(),
		Calendars:  calendars,
		Profiles:   memory.NewProfileRepository(),
		Calculator: pricing.NewCalculator(pricing.DefaultRateCard()),
		Clock:      clock.NewFixed(time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)),
		Outbox:     memory.NewOutbox(),
	})

	srv := NewServer(
		config.Config{Env: "test", HTTPAddr: ":0", SessionHeader: "X-Session-ID"},
		obs.Middleware{},
		obs.HealthHandlers{},
		Handlers{
			Rental:       RentalHandler{Sessions: manager},
			Availability: AvailabilityHandler{Products: products, Calendars: calendars},
			Session:      SessionHandler{Sessions: manager},
		},
	)
	return srv.Handler
}

func do(t *testing.T, h http.Handler, method, path string, body any, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestServer_Health(t *testing.T) {
	h := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/livez", nil, "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", nil, "").Code)
}

func TestServer_Quote(t *testing.T) {
	h := newTestServer(t)
	body := map[string]any{
		"product_id": "prd-anarkali-01",
		"start_date": "2025-03-10T00:00:00Z",
		"end_date":   "2025-03-13T00:00:00Z",
	}

	rec := do(t, h, http.MethodPost, "/api/v1/rentals/quote", body, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "session header required")

	rec = do(t, h, http.MethodPost, "/api/v1/rentals/quote", body, "sess-1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	quote := decode[dto.QuoteResponse](t, rec)
	assert.Equal(t, "INR", quote.Currency)
	assert.Equal(t, int64(900), quote.Breakdown.Subtotal)
	assert.Equal(t, int64(90), quote.Discounts.FirstTimeDiscount, "new session gets the first-time discount")
	assert.Equal(t, int64(1000), quote.SecurityDeposit)

	body["product_id"] = "prd-missing"
	rec = do(t, h, http.MethodPost, "/api/v1/rentals/quote", body, "sess-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_OptimalDuration(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/rentals/optimal-duration?buy_price=5000", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	advice := decode[dto.DurationAdviceResponse](t, rec)
	assert.Equal(t, 7, advice.Recommended)
	assert.Equal(t, 3, advice.Minimum)

	rec = do(t, h, http.MethodGet, "/api/v1/rentals/optimal-duration?buy_price=oops", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_BookingFlow(t *testing.T) {
	h := newTestServer(t)
	const sess = "sess-flow"

	rec := do(t, h, http.MethodPost, "/api/v1/bookings", nil, sess)
	assert.Equal(t, http.StatusConflict, rec.Code, "no draft yet")

	draftBody := map[string]any{
		"product_id": "prd-anarkali-01",
		"start_date": "2025-03-10T00:00:00Z",
		"end_date":   "2025-03-13T00:00:00Z",
	}
	rec = do(t, h, http.MethodPut, "/api/v1/session/draft", draftBody, sess)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	draft := decode[dto.DraftResponse](t, rec)
	require.Equal(t, "READY", draft.State, "draft errors: %v", draft.Errors)
	require.NotNil(t, draft.Calculation)

	rec = do(t, h, http.MethodPost, "/api/v1/bookings", nil, sess)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]string](t, rec)
	id := created["booking_id"]
	require.NotEmpty(t, id)

	rec = do(t, h, http.MethodGet, "/api/v1/session/draft", nil, sess)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NONE", decode[dto.DraftResponse](t, rec).State)

	rec = do(t, h, http.MethodGet, "/api/v1/products/prd-anarkali-01/availability?start=2025-03-12&end=2025-03-14", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[dto.AvailabilityResponse](t, rec).Available)

	rec = do(t, h, http.MethodPost, "/api/v1/bookings/"+id+"/activate", nil, sess)
	assert.Equal(t, http.StatusConflict, rec.Code, "pending bookings cannot be activated")

	rec = do(t, h, http.MethodPost, "/api/v1/bookings/"+id+"/confirm", nil, sess)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/bookings/"+id+"/cancel", map[string]any{"reason": "plans changed"}, sess)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/products/prd-anarkali-01/availability?start=2025-03-12&end=2025-03-14", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.AvailabilityResponse](t, rec).Available, "cancelling releases the dates")

	rec = do(t, h, http.MethodGet, "/api/v1/bookings", nil, sess)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string][]dto.BookingResponse](t, rec)
	require.Len(t, list["bookings"], 1)
	assert.Equal(t, "CANCELLED", list["bookings"][0].Status)
}

func TestServer_LoyaltyAndRating(t *testing.T) {
	h := newTestServer(t)
	const sess = "sess-loyalty"

	rec := do(t, h, http.MethodGet, "/api/v1/me/loyalty", nil, sess)
	require.Equal(t, http.StatusOK, rec.Code)
	progress := decode[dto.LoyaltyProgressResponse](t, rec)
	assert.Equal(t, "BRONZE", progress.Tier)
	assert.Equal(t, "SILVER", progress.NextTier)
	assert.Equal(t, 5, progress.Required)

	rec = do(t, h, http.MethodPost, "/api/v1/me/rating", map[string]any{"rating": 7}, sess)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/me/rating", map[string]any{"rating": 5}, sess)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/me/savings", nil, sess)
	require.Equal(t, http.StatusOK, rec.Code)
	savings := decode[dto.SavingsResponse](t, rec)
	assert.Zero(t, savings.TotalSavings)
}
