package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ultimedia/internal/common"
	"ultimedia/internal/models"
	"ultimedia/internal/repositories"
)

const presignedURLExpiry = 24 * time.Hour

// InvoiceDetail bundles everything a rendered invoice needs: the invoice,
// its booking, the billed-to profile and the priced line items.
type InvoiceDetail struct {
	Invoice   *models.Invoice         `json:"invoice"`
	Booking   *models.Booking         `json:"booking"`
	Profile   *models.Profile         `json:"profile,omitempty"`
	Services  []*models.Service       `json:"services"`
	Equipment *models.EquipmentOption `json:"equipment,omitempty"`
}

// BookingSummary is the slice of booking data shown on an invoice listing.
type BookingSummary struct {
	ID            uuid.UUID `json:"id"`
	EventDate     time.Time `json:"event_date"`
	EventLocation string    `json:"event_location"`
	Status        string    `json:"status"`
}

// InvoiceView is an invoice expanded with its booking summary.
type InvoiceView struct {
	models.Invoice
	Booking *BookingSummary `json:"booking,omitempty"`
}

// RecordPaymentRequest is one entry to append to an invoice's payment log.
type RecordPaymentRequest struct {
	PaymentReference string
	Amount           decimal.Decimal
	PaymentMethod    string
	Status           string
}

// InvoiceServiceInterface serves invoice reads, PDF generation, email
// dispatch and the payment log.
type InvoiceServiceInterface interface {
	ListUserInvoices(ctx context.Context, userID uuid.UUID) ([]*InvoiceView, error)
	GetInvoiceDetail(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceDetail, error)
	DownloadPDF(ctx context.Context, userID, invoiceID uuid.UUID) ([]byte, string, error)
	EmailInvoice(ctx context.Context, userID, invoiceID uuid.UUID) error
	RecordPayment(ctx context.Context, userID, invoiceID uuid.UUID, req RecordPaymentRequest) (*models.Payment, error)
	ListPayments(ctx context.Context, userID, invoiceID uuid.UUID) ([]*models.Payment, error)
}

type invoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	bookingRepo repositories.BookingRepository
	paymentRepo repositories.PaymentRepository
	profileRepo repositories.ProfileRepository
	catalogRepo repositories.CatalogRepository
	pdfSvc      PDFService
	storage     StorageService
	mailer      MailerService
}

func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	bookingRepo repositories.BookingRepository,
	paymentRepo repositories.PaymentRepository,
	profileRepo repositories.ProfileRepository,
	catalogRepo repositories.CatalogRepository,
	pdfSvc PDFService,
	storage StorageService,
	mailer MailerService,
) InvoiceServiceInterface {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
		catalogRepo: catalogRepo,
		pdfSvc:      pdfSvc,
		storage:     storage,
		mailer:      mailer,
	}
}

func (s *invoiceService) ListUserInvoices(ctx context.Context, userID uuid.UUID) ([]*InvoiceView, error) {
	invoices, err := s.invoiceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.PersistenceError("failed to load invoices", err)
	}

	views := make([]*InvoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		view := &InvoiceView{Invoice: *invoice}

		booking, err := s.bookingRepo.GetByID(ctx, userID, invoice.BookingID)
		if err != nil {
			log.Printf("failed to load booking for invoice %s: %v", invoice.ID, err)
		} else if booking != nil {
			view.Booking = &BookingSummary{
				ID:            booking.ID,
				EventDate:     booking.EventDate,
				EventLocation: booking.EventLocation,
				Status:        booking.Status,
			}
		}

		views = append(views, view)
	}
	return views, nil
}

// GetInvoiceDetail loads an invoice scoped to its owner, together with the
// booking, the billed-to profile and the priced line items.
func (s *invoiceService) GetInvoiceDetail(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, common.PersistenceError("failed to load invoice", err)
	}
	if invoice == nil {
		return nil, common.NotFoundError("invoice")
	}

	booking, err := s.bookingRepo.GetByID(ctx, userID, invoice.BookingID)
	if err != nil {
		return nil, common.PersistenceError("failed to load booking for invoice", err)
	}
	if booking == nil {
		return nil, common.NotFoundError("booking for invoice")
	}

	detail := &InvoiceDetail{Invoice: invoice, Booking: booking}

	detail.Profile, err = s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, common.PersistenceError("failed to load profile for invoice", err)
	}

	detail.Services, err = s.catalogRepo.GetServicesByIDs(ctx, booking.ServiceIDs)
	if err != nil {
		return nil, common.PersistenceError("failed to load services for invoice", err)
	}

	if booking.EquipmentOptionID != nil {
		detail.Equipment, err = s.catalogRepo.GetEquipmentByID(ctx, *booking.EquipmentOptionID)
		if err != nil {
			log.Printf("failed to load equipment for invoice %s: %v", invoice.ID, err)
		}
	}

	return detail, nil
}

// DownloadPDF renders the invoice, archives a copy in object storage and
// returns the bytes with a download filename. Archival failures are logged
// but never block the download.
func (s *invoiceService) DownloadPDF(ctx context.Context, userID, invoiceID uuid.UUID) ([]byte, string, error) {
	detail, err := s.GetInvoiceDetail(ctx, userID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.pdfSvc.RenderInvoice(detail)
	if err != nil {
		return nil, "", common.GenerationUnavailable("failed to render invoice PDF", err)
	}

	filename := pdfFilename(detail.Invoice.InvoiceNumber)
	objectName := fmt.Sprintf("%s/%s", userID, filename)
	if err := s.storage.UploadInvoicePDF(ctx, objectName, pdf); err != nil {
		log.Printf("failed to archive invoice PDF %s: %v", objectName, err)
	} else if url, err := s.storage.GetPresignedURL(ctx, objectName, presignedURLExpiry); err != nil {
		log.Printf("failed to presign invoice PDF %s: %v", objectName, err)
	} else if err := s.invoiceRepo.SetPDFURL(ctx, detail.Invoice.ID, url); err != nil {
		log.Printf("failed to record pdf_url for invoice %s: %v", detail.Invoice.ID, err)
	}

	return pdf, filename, nil
}

// EmailInvoice renders the invoice and mails it to the billed-to address as
// a PDF attachment.
func (s *invoiceService) EmailInvoice(ctx context.Context, userID, invoiceID uuid.UUID) error {
	detail, err := s.GetInvoiceDetail(ctx, userID, invoiceID)
	if err != nil {
		return err
	}
	if detail.Profile == nil || detail.Profile.Email == "" {
		return common.ValidationError("no billing email on file")
	}

	pdf, err := s.pdfSvc.RenderInvoice(detail)
	if err != nil {
		return common.GenerationUnavailable("failed to render invoice PDF", err)
	}

	if err := s.mailer.SendInvoice(detail.Profile.Email, detail.Profile.FullName, detail.Invoice, pdf); err != nil {
		return common.GenerationUnavailable("failed to send invoice email", err)
	}

	if err := s.invoiceRepo.MarkEmailSent(ctx, detail.Invoice.ID); err != nil {
		log.Printf("failed to mark invoice %s email_sent: %v", detail.Invoice.ID, err)
	}
	return nil
}

// RecordPayment appends one entry to the invoice's payment log. When a
// confirmed payment brings the running total to the amount due, the invoice
// flips to paid; log entries themselves are never updated.
func (s *invoiceService) RecordPayment(ctx context.Context, userID, invoiceID uuid.UUID, req RecordPaymentRequest) (*models.Payment, error) {
	if strings.TrimSpace(req.PaymentReference) == "" {
		return nil, common.ValidationError("payment reference is required")
	}
	if !req.Amount.IsPositive() {
		return nil, common.ValidationError("payment amount must be positive")
	}
	status := req.Status
	if status == "" {
		status = models.PaymentStatusPending
	}
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusConfirmed, models.PaymentStatusFailed:
	default:
		return nil, common.ValidationError("invalid payment status")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, common.PersistenceError("failed to load invoice", err)
	}
	if invoice == nil {
		return nil, common.NotFoundError("invoice")
	}

	payment := &models.Payment{
		ID:               uuid.New(),
		InvoiceID:        invoice.ID,
		PaymentReference: strings.TrimSpace(req.PaymentReference),
		Amount:           req.Amount,
		PaymentMethod:    req.PaymentMethod,
		Status:           status,
		CreatedAt:        time.Now(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, common.PersistenceError("failed to record payment", err)
	}

	if status == models.PaymentStatusConfirmed && invoice.PaymentStatus != models.InvoicePaymentStatusPaid {
		confirmed, err := s.confirmedTotal(ctx, invoice.ID)
		if err != nil {
			return nil, common.PersistenceError("failed to total confirmed payments", err)
		}
		if confirmed.GreaterThanOrEqual(invoice.AmountDue) {
			if err := s.invoiceRepo.MarkPaid(ctx, invoice.ID, confirmed); err != nil {
				return nil, common.PersistenceError("failed to mark invoice paid", err)
			}
		}
	}

	return payment, nil
}

// confirmedTotal sums the confirmed entries in an invoice's payment log.
func (s *invoiceService) confirmedTotal(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	payments, err := s.paymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		if p.Status == models.PaymentStatusConfirmed {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (s *invoiceService) ListPayments(ctx context.Context, userID, invoiceID uuid.UUID) ([]*models.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, common.PersistenceError("failed to load invoice", err)
	}
	if invoice == nil {
		return nil, common.NotFoundError("invoice")
	}

	payments, err := s.paymentRepo.ListByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, common.PersistenceError("failed to load payments", err)
	}
	return payments, nil
}

func pdfFilename(invoiceNumber string) string {
	return fmt.Sprintf("invoice-%s.pdf", strings.ToLower(invoiceNumber))
}
