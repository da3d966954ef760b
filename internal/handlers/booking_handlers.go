package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"ultimedia/internal/common"
	"ultimedia/internal/services"
)

// BookingHandlers serves price quotes and booking submissions.
type BookingHandlers struct {
	bookingSvc services.BookingServiceInterface
}

func NewBookingHandlers(bookingSvc services.BookingServiceInterface) *BookingHandlers {
	return &BookingHandlers{bookingSvc: bookingSvc}
}

type selectionRequest struct {
	ServiceIDs  []string        `json:"serviceIds"`
	EquipmentID *string         `json:"equipmentId"`
	DistanceKm  decimal.Decimal `json:"distanceKm"`
}

func (r *selectionRequest) toQuote() (services.QuoteRequest, error) {
	req := services.QuoteRequest{DistanceKm: r.DistanceKm}

	for _, idStr := range r.ServiceIDs {
		id, err := common.ValidateUUID(idStr, "serviceIds")
		if err != nil {
			return services.QuoteRequest{}, common.ValidationError(err.Error())
		}
		req.ServiceIDs = append(req.ServiceIDs, id)
	}

	if r.EquipmentID != nil && *r.EquipmentID != "" {
		id, err := common.ValidateUUID(*r.EquipmentID, "equipmentId")
		if err != nil {
			return services.QuoteRequest{}, common.ValidationError(err.Error())
		}
		req.EquipmentID = &id
	}

	return req, nil
}

// CalculatePrice handles POST /api/bookings/calculate
func (h *BookingHandlers) CalculatePrice(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetUserIDFromContext(ctx); !ok {
		return common.SendUnauthorized(c, "authentication required")
	}

	var req selectionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.ValidationError("invalid request format"))
	}

	quote, err := req.toQuote()
	if err != nil {
		return common.SendError(c, err)
	}

	breakdown, err := h.bookingSvc.Quote(ctx, quote)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, breakdown)
}

// CreateBooking handles POST /api/bookings/create
func (h *BookingHandlers) CreateBooking(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "authentication required")
	}

	var req struct {
		selectionRequest
		EventDate       string  `json:"eventDate"`
		EventLocation   string  `json:"eventLocation"`
		AdditionalNotes *string `json:"additionalNotes"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.ValidationError("invalid request format"))
	}

	quote, err := req.toQuote()
	if err != nil {
		return common.SendError(c, err)
	}

	eventDate, err := common.ValidateEventDate(req.EventDate)
	if err != nil {
		return common.SendError(c, common.ValidationError(err.Error()))
	}

	result, err := h.bookingSvc.CreateBooking(ctx, userID, services.CreateBookingRequest{
		QuoteRequest:    quote,
		EventDate:       eventDate,
		EventLocation:   req.EventLocation,
		AdditionalNotes: req.AdditionalNotes,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, result)
}

// MyBookings handles GET /api/bookings/my-bookings
func (h *BookingHandlers) MyBookings(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "authentication required")
	}

	bookings, err := h.bookingSvc.ListUserBookings(ctx, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	if bookings == nil {
		bookings = []*services.BookingView{}
	}
	return common.SendData(c, http.StatusOK, bookings)
}

func parseID(c echo.Context, field string) (uuid.UUID, error) {
	return common.ValidateUUID(c.Param("id"), field)
}
