package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"ultimedia/internal/common"
	"ultimedia/internal/services"
)

// InvoiceHandlers serves invoice reads, PDF downloads, email dispatch and the
// payment log. Every route is scoped to the authenticated owner.
type InvoiceHandlers struct {
	invoiceSvc services.InvoiceServiceInterface
}

func NewInvoiceHandlers(invoiceSvc services.InvoiceServiceInterface) *InvoiceHandlers {
	return &InvoiceHandlers{invoiceSvc: invoiceSvc}
}

// MyInvoices handles GET /api/invoices/my-invoices
func (h *InvoiceHandlers) MyInvoices(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "authentication required")
	}

	invoices, err := h.invoiceSvc.ListUserInvoices(ctx, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, invoices)
}

// GetInvoice handles GET /api/invoices/:id
func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "authentication required")
	}

	invoiceID, err := parseID(c, "id")
	if err != nil {
		return common.SendError(c, common.ValidationError(err.Error()))
	}

	detail, err := h.invoiceSvc.GetInvoiceDetail(ctx, userID, invoiceID)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, detail)
}

// DownloadInvoice handles GET /api/invoices/:id/download
func (h *InvoiceHandlers) DownloadInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "authentication required")
	}

	invoiceID, err := parseID(c, "id")
	if err != nil {
		return common.SendError(c, common.ValidationError(err.Error()))
	}

	pdf, filename, err := h.invoiceSvc.DownloadPDF(ctx, userID, invoiceID)
	if err != nil {
		return common.SendError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// EmailInvoice handles POST /api/invoices/:id/email
func (h *InvoiceHandlers) EmailInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "authentication required")
	}

	invoiceID, err := parseID(c, "id")
	if err != nil {
		return common.SendError(c, common.ValidationError(err.Error()))
	}

	if err := h.invoiceSvc.EmailInvoice(ctx, userID, invoiceID); err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, map[string]string{"message": "invoice email sent"})
}

// RecordPayment handles POST /api/invoices/:id/payments
func (h *InvoiceHandlers) RecordPayment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "authentication required")
	}

	invoiceID, err := parseID(c, "id")
	if err != nil {
		return common.SendError(c, common.ValidationError(err.Error()))
	}

	var req struct {
		PaymentReference string          `json:"paymentReference"`
		Amount           decimal.Decimal `json:"amount"`
		PaymentMethod    string          `json:"paymentMethod"`
		Status           string          `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.ValidationError("invalid request format"))
	}

	payment, err := h.invoiceSvc.RecordPayment(ctx, userID, invoiceID, services.RecordPaymentRequest{
		PaymentReference: req.PaymentReference,
		Amount:           req.Amount,
		PaymentMethod:    req.PaymentMethod,
		Status:           req.Status,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, payment)
}

// ListPayments handles GET /api/invoices/:id/payments
func (h *InvoiceHandlers) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "authentication required")
	}

	invoiceID, err := parseID(c, "id")
	if err != nil {
		return common.SendError(c, common.ValidationError(err.Error()))
	}

	payments, err := h.invoiceSvc.ListPayments(ctx, userID, invoiceID)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, payments)
}
