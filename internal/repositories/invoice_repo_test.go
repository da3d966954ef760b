package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"ultimedia/internal/models"
)

type InvoiceRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    InvoiceRepository
	userID  uuid.UUID
	context context.Context
}

func (suite *InvoiceRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewInvoiceRepo(mock)
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *InvoiceRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestInvoiceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceRepoTestSuite))
}

func (suite *InvoiceRepoTestSuite) TestNextInvoiceSequence_FirstOfYear() {
	suite.mock.ExpectQuery(`INSERT INTO invoice_sequences`).
		WithArgs(2026).
		WillReturnRows(pgxmock.NewRows([]string{"last_number"}).AddRow(1))

	sequence, err := suite.repo.NextInvoiceSequence(suite.context, 2026)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, sequence)
}

func (suite *InvoiceRepoTestSuite) TestNextInvoiceSequence_Advances() {
	suite.mock.ExpectQuery(`INSERT INTO invoice_sequences`).
		WithArgs(2026).
		WillReturnRows(pgxmock.NewRows([]string{"last_number"}).AddRow(42))

	sequence, err := suite.repo.NextInvoiceSequence(suite.context, 2026)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 42, sequence)
}

func (suite *InvoiceRepoTestSuite) TestNextInvoiceSequence_DatabaseDown() {
	suite.mock.ExpectQuery(`INSERT INTO invoice_sequences`).
		WithArgs(2026).
		WillReturnError(errors.New("connection refused"))

	_, err := suite.repo.NextInvoiceSequence(suite.context, 2026)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "advance invoice sequence")
}

func (suite *InvoiceRepoTestSuite) TestCreate_Success() {
	now := time.Now()
	invoice := &models.Invoice{
		ID:            uuid.New(),
		UserID:        suite.userID,
		BookingID:     uuid.New(),
		InvoiceNumber: "ULT-2026-00007",
		AmountDue:     decimal.RequireFromString("17984.65"),
		PaymentStatus: models.InvoicePaymentStatusUnpaid,
		AmountPaid:    decimal.Zero,
		IssuedDate:    now,
		DueDate:       now.AddDate(0, 0, 30),
	}

	suite.mock.ExpectExec(`INSERT INTO invoices`).
		WithArgs(invoice.ID, invoice.UserID, invoice.BookingID, invoice.InvoiceNumber,
			invoice.AmountDue, invoice.PaymentStatus, invoice.AmountPaid,
			invoice.IssuedDate, invoice.DueDate, invoice.PDFURL, invoice.EmailSent).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, invoice)
	assert.NoError(suite.T(), err)
}

func (suite *InvoiceRepoTestSuite) TestGetByID_NotFound() {
	invoiceID := uuid.New()

	suite.mock.ExpectQuery(`SELECT (.+) FROM invoices`).
		WithArgs(suite.userID, invoiceID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	invoice, err := suite.repo.GetByID(suite.context, suite.userID, invoiceID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), invoice)
}

func (suite *InvoiceRepoTestSuite) TestGetByBookingID_NoInvoiceYet() {
	bookingID := uuid.New()

	suite.mock.ExpectQuery(`SELECT (.+) FROM invoices`).
		WithArgs(bookingID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	invoice, err := suite.repo.GetByBookingID(suite.context, bookingID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), invoice)
}

func (suite *InvoiceRepoTestSuite) TestMarkPaid_Success() {
	invoiceID := uuid.New()
	paid := decimal.RequireFromString("11603")

	suite.mock.ExpectExec(`UPDATE invoices`).
		WithArgs(paid, invoiceID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.MarkPaid(suite.context, invoiceID, paid)
	assert.NoError(suite.T(), err)
}

func (suite *InvoiceRepoTestSuite) TestMarkEmailSent_Success() {
	invoiceID := uuid.New()

	suite.mock.ExpectExec(`UPDATE invoices`).
		WithArgs(invoiceID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.MarkEmailSent(suite.context, invoiceID)
	assert.NoError(suite.T(), err)
}
