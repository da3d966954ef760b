package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ultimedia/internal/common"
	"ultimedia/internal/models"
	"ultimedia/internal/pricing"
	"ultimedia/internal/services"
)

type stubBookingSvc struct {
	breakdown pricing.Breakdown
	result    *services.BookingResult
	views     []*services.BookingView
	err       error
}

func (s *stubBookingSvc) LoadCatalog(_ context.Context) (pricing.Catalog, error) {
	return pricing.Catalog{}, nil
}

func (s *stubBookingSvc) Quote(_ context.Context, _ services.QuoteRequest) (pricing.Breakdown, error) {
	return s.breakdown, s.err
}

func (s *stubBookingSvc) CreateBooking(_ context.Context, _ uuid.UUID, _ services.CreateBookingRequest) (*services.BookingResult, error) {
	return s.result, s.err
}

func (s *stubBookingSvc) ListUserBookings(_ context.Context, _ uuid.UUID) ([]*services.BookingView, error) {
	return s.views, s.err
}

func (s *stubBookingSvc) ReconcileMissingInvoices(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

func newBookingContext(t *testing.T, method, target, body string, authed bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authed {
		ctx := context.WithValue(req.Context(), common.UserIDKey, uuid.New())
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) common.Envelope {
	t.Helper()

	var envelope common.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestCalculatePrice_Unauthenticated(t *testing.T) {
	h := NewBookingHandlers(&stubBookingSvc{})
	c, rec := newBookingContext(t, http.MethodPost, "/api/bookings/calculate", `{}`, false)

	require.NoError(t, h.CalculatePrice(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, string(common.KindUnauthorized), envelope.Error.Code)
}

func TestCalculatePrice_Success(t *testing.T) {
	svc := &stubBookingSvc{breakdown: pricing.Breakdown{
		TotalAmount: decimal.RequireFromString("17984.65"),
	}}
	h := NewBookingHandlers(svc)

	body := `{"serviceIds":["` + uuid.NewString() + `"],"distanceKm":10}`
	c, rec := newBookingContext(t, http.MethodPost, "/api/bookings/calculate", body, true)

	require.NoError(t, h.CalculatePrice(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Nil(t, envelope.Error)
}

func TestCalculatePrice_MalformedServiceID(t *testing.T) {
	h := NewBookingHandlers(&stubBookingSvc{})
	c, rec := newBookingContext(t, http.MethodPost, "/api/bookings/calculate",
		`{"serviceIds":["not-a-uuid"]}`, true)

	require.NoError(t, h.CalculatePrice(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, string(common.KindValidation), envelope.Error.Code)
}

func TestCalculatePrice_PricingErrorMapsToBadRequest(t *testing.T) {
	svc := &stubBookingSvc{err: common.PricingError("unknown service in selection", nil)}
	h := NewBookingHandlers(svc)

	body := `{"serviceIds":["` + uuid.NewString() + `"]}`
	c, rec := newBookingContext(t, http.MethodPost, "/api/bookings/calculate", body, true)

	require.NoError(t, h.CalculatePrice(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, string(common.KindPricing), envelope.Error.Code)
}

func TestCreateBooking_InvalidEventDate(t *testing.T) {
	h := NewBookingHandlers(&stubBookingSvc{})

	body := `{"serviceIds":["` + uuid.NewString() + `"],"eventDate":"15/10/2026","eventLocation":"Nairobi"}`
	c, rec := newBookingContext(t, http.MethodPost, "/api/bookings/create", body, true)

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, string(common.KindValidation), envelope.Error.Code)
}

func TestCreateBooking_Success(t *testing.T) {
	svc := &stubBookingSvc{result: &services.BookingResult{
		Booking: &models.Booking{ID: uuid.New(), Status: models.BookingStatusPending},
		Invoice: &models.Invoice{ID: uuid.New(), InvoiceNumber: "ULT-2026-00001"},
	}}
	h := NewBookingHandlers(svc)

	body := `{"serviceIds":["` + uuid.NewString() + `"],"eventDate":"2026-10-15","eventLocation":"Nairobi","distanceKm":10}`
	c, rec := newBookingContext(t, http.MethodPost, "/api/bookings/create", body, true)

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
}

func TestCreateBooking_GenerationUnavailableMapsToServerError(t *testing.T) {
	svc := &stubBookingSvc{err: common.GenerationUnavailable("invoice numbering is unavailable", nil)}
	h := NewBookingHandlers(svc)

	body := `{"serviceIds":["` + uuid.NewString() + `"],"eventDate":"2026-10-15","eventLocation":"Nairobi"}`
	c, rec := newBookingContext(t, http.MethodPost, "/api/bookings/create", body, true)

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, string(common.KindGenerationUnavailable), envelope.Error.Code)
}

func TestMyBookings_EmptyList(t *testing.T) {
	h := NewBookingHandlers(&stubBookingSvc{})
	c, rec := newBookingContext(t, http.MethodGet, "/api/bookings/my-bookings", "", true)

	require.NoError(t, h.MyBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	data, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Empty(t, data)
}
