package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ultimedia/internal/common"
	"ultimedia/internal/models"
	"ultimedia/internal/pricing"
	"ultimedia/internal/repositories"
)

// invoiceDueDays is how long after issue an invoice falls due.
const invoiceDueDays = 30

// QuoteRequest is a pricing query against the current catalog.
type QuoteRequest struct {
	ServiceIDs  []uuid.UUID
	EquipmentID *uuid.UUID
	DistanceKm  decimal.Decimal
}

// CreateBookingRequest is a booking submission.
type CreateBookingRequest struct {
	QuoteRequest
	EventDate       time.Time
	EventLocation   string
	AdditionalNotes *string
}

// BookingResult is the success result of a booking submission.
type BookingResult struct {
	Booking *models.Booking `json:"booking"`
	Invoice *models.Invoice `json:"invoice"`
}

// InvoiceSummary is the slice of invoice data shown on a booking listing.
type InvoiceSummary struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	PaymentStatus string          `json:"payment_status"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
}

// BookingView is a booking expanded with its service lines, equipment and
// invoice summary. Invoice is nil when invoice creation failed after the
// booking was persisted; listings must still render such bookings.
type BookingView struct {
	models.Booking
	Services  []*models.Service       `json:"services"`
	Equipment *models.EquipmentOption `json:"equipment,omitempty"`
	Invoice   *InvoiceSummary         `json:"invoice,omitempty"`
}

// BookingServiceInterface sequences booking creation and serves booking reads.
type BookingServiceInterface interface {
	LoadCatalog(ctx context.Context) (pricing.Catalog, error)
	Quote(ctx context.Context, req QuoteRequest) (pricing.Breakdown, error)
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResult, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	ReconcileMissingInvoices(ctx context.Context, grace time.Duration) (int, error)
}

type bookingService struct {
	catalogRepo   repositories.CatalogRepository
	bookingRepo   repositories.BookingRepository
	invoiceRepo   repositories.InvoiceRepository
	catalogSvc    CatalogServiceInterface
	numberGen     InvoiceNumberGenerator
	transportRate decimal.Decimal
}

func NewBookingService(
	catalogRepo repositories.CatalogRepository,
	bookingRepo repositories.BookingRepository,
	invoiceRepo repositories.InvoiceRepository,
	catalogSvc CatalogServiceInterface,
	numberGen InvoiceNumberGenerator,
	transportRate decimal.Decimal,
) BookingServiceInterface {
	return &bookingService{
		catalogRepo:   catalogRepo,
		bookingRepo:   bookingRepo,
		invoiceRepo:   invoiceRepo,
		catalogSvc:    catalogSvc,
		numberGen:     numberGen,
		transportRate: transportRate,
	}
}

// LoadCatalog snapshots the active catalog for pricing.
func (s *bookingService) LoadCatalog(ctx context.Context) (pricing.Catalog, error) {
	services, err := s.catalogSvc.ListServices(ctx)
	if err != nil {
		return pricing.Catalog{}, err
	}
	equipment, err := s.catalogSvc.ListEquipment(ctx)
	if err != nil {
		return pricing.Catalog{}, err
	}
	return pricing.NewCatalog(services, equipment), nil
}

// Quote prices a selection against a fresh catalog snapshot.
func (s *bookingService) Quote(ctx context.Context, req QuoteRequest) (pricing.Breakdown, error) {
	if len(req.ServiceIDs) == 0 {
		return pricing.Breakdown{}, common.ValidationError("at least one service must be selected")
	}
	if req.DistanceKm.IsNegative() {
		return pricing.Breakdown{}, common.ValidationError("distance must be non-negative")
	}

	catalog, err := s.LoadCatalog(ctx)
	if err != nil {
		return pricing.Breakdown{}, err
	}

	breakdown, err := pricing.Compute(req.ServiceIDs, req.EquipmentID, req.DistanceKm, s.transportRate, catalog)
	if err != nil {
		return pricing.Breakdown{}, common.PricingError(err.Error(), err)
	}
	return breakdown, nil
}

// CreateBooking runs the five-stage creation sequence: validate, price,
// persist booking, mint invoice number, persist invoice. Stages are strictly
// ordered; there is no rollback of a persisted booking when a later stage
// fails — the reconciliation job repairs those out-of-band.
func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResult, error) {
	// Stage 1: validate. Nothing is persisted on failure.
	if len(req.ServiceIDs) == 0 {
		return nil, common.ValidationError("at least one service must be selected")
	}
	if req.EventDate.IsZero() {
		return nil, common.ValidationError("event date is required")
	}
	if strings.TrimSpace(req.EventLocation) == "" {
		return nil, common.ValidationError("event location is required")
	}
	if req.DistanceKm.IsNegative() {
		return nil, common.ValidationError("distance must be non-negative")
	}

	// Stage 2: price against a fresh catalog snapshot.
	catalog, err := s.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := pricing.Compute(req.ServiceIDs, req.EquipmentID, req.DistanceKm, s.transportRate, catalog)
	if err != nil {
		return nil, common.PricingError(err.Error(), err)
	}

	// Stage 3: persist the booking as pending with the computed amounts.
	now := time.Now()
	booking := &models.Booking{
		ID:                uuid.New(),
		UserID:            userID,
		ServiceIDs:        dedupeIDs(req.ServiceIDs),
		EquipmentOptionID: req.EquipmentID,
		EventDate:         req.EventDate,
		EventLocation:     strings.TrimSpace(req.EventLocation),
		DistanceKm:        req.DistanceKm,
		TransportCost:     breakdown.TransportCost,
		BaseAmount:        breakdown.BaseAmount,
		VATAmount:         breakdown.VATAmount,
		LevyAmount:        breakdown.LevyAmount,
		TotalAmount:       breakdown.TotalAmount,
		AdditionalNotes:   req.AdditionalNotes,
		Status:            models.BookingStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, common.PersistenceError("failed to save booking", err)
	}

	// Stage 4: mint the invoice number. The booking stays pending without an
	// invoice when this fails; the caller resubmits or the reconciliation
	// job catches up.
	number, err := s.numberGen.Next(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	// Stage 5: persist the invoice with amount_due frozen at the booking
	// total.
	invoice := newInvoiceForBooking(booking, number.Value, now)
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, common.PersistenceError("failed to save invoice", err)
	}

	return &BookingResult{Booking: booking, Invoice: invoice}, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*BookingView, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.PersistenceError("failed to load bookings", err)
	}

	views := make([]*BookingView, 0, len(bookings))
	for _, booking := range bookings {
		view := &BookingView{Booking: *booking}

		services, err := s.catalogRepo.GetServicesByIDs(ctx, booking.ServiceIDs)
		if err != nil {
			log.Printf("failed to load services for booking %s: %v", booking.ID, err)
			services = []*models.Service{}
		}
		view.Services = services

		if booking.EquipmentOptionID != nil {
			equipment, err := s.catalogRepo.GetEquipmentByID(ctx, *booking.EquipmentOptionID)
			if err != nil {
				log.Printf("failed to load equipment for booking %s: %v", booking.ID, err)
			} else {
				view.Equipment = equipment
			}
		}

		invoice, err := s.invoiceRepo.GetByBookingID(ctx, booking.ID)
		if err != nil {
			return nil, common.PersistenceError("failed to load invoice for booking", err)
		}
		if invoice != nil {
			view.Invoice = &InvoiceSummary{
				ID:            invoice.ID,
				InvoiceNumber: invoice.InvoiceNumber,
				PaymentStatus: invoice.PaymentStatus,
				AmountDue:     invoice.AmountDue,
				AmountPaid:    invoice.AmountPaid,
			}
		}

		views = append(views, view)
	}
	return views, nil
}

// ReconcileMissingInvoices mints invoices for pending bookings older than
// grace that have none, and reports how many it repaired.
func (s *bookingService) ReconcileMissingInvoices(ctx context.Context, grace time.Duration) (int, error) {
	orphans, err := s.bookingRepo.ListPendingWithoutInvoice(ctx, time.Now().Add(-grace))
	if err != nil {
		return 0, common.PersistenceError("failed to list bookings pending reconciliation", err)
	}

	repaired := 0
	for _, booking := range orphans {
		now := time.Now()
		number, err := s.numberGen.Next(ctx, now.Year())
		if err != nil {
			log.Printf("reconciliation: invoice number for booking %s: %v", booking.ID, err)
			continue
		}
		invoice := newInvoiceForBooking(booking, number.Value, now)
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			log.Printf("reconciliation: create invoice for booking %s: %v", booking.ID, err)
			continue
		}
		repaired++
	}
	return repaired, nil
}

func newInvoiceForBooking(booking *models.Booking, invoiceNumber string, issued time.Time) *models.Invoice {
	return &models.Invoice{
		ID:            uuid.New(),
		UserID:        booking.UserID,
		BookingID:     booking.ID,
		InvoiceNumber: invoiceNumber,
		AmountDue:     booking.TotalAmount,
		PaymentStatus: models.InvoicePaymentStatusUnpaid,
		AmountPaid:    decimal.Zero,
		IssuedDate:    issued,
		DueDate:       issued.AddDate(0, 0, invoiceDueDays),
		CreatedAt:     issued,
		UpdatedAt:     issued,
	}
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
