package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"ultimedia/internal/models"
)

type BookingRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    BookingRepository
	userID  uuid.UUID
	context context.Context
}

func (suite *BookingRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewBookingRepo(mock)
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *BookingRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestBookingRepoTestSuite(t *testing.T) {
	suite.Run(t, new(BookingRepoTestSuite))
}

func (suite *BookingRepoTestSuite) newBooking() *models.Booking {
	return &models.Booking{
		ID:            uuid.New(),
		UserID:        suite.userID,
		ServiceIDs:    []uuid.UUID{uuid.New(), uuid.New()},
		EventDate:     time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		EventLocation: "Nairobi",
		DistanceKm:    decimal.RequireFromString("10"),
		TransportCost: decimal.RequireFromString("500"),
		BaseAmount:    decimal.RequireFromString("15500"),
		VATAmount:     decimal.RequireFromString("2480"),
		LevyAmount:    decimal.RequireFromString("4.65"),
		TotalAmount:   decimal.RequireFromString("17984.65"),
		Status:        models.BookingStatusPending,
	}
}

func (suite *BookingRepoTestSuite) TestCreate_Success() {
	booking := suite.newBooking()

	suite.mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(booking.ID, booking.UserID, booking.ServiceIDs, booking.EquipmentOptionID,
			booking.EventDate, booking.EventLocation, booking.DistanceKm,
			booking.TransportCost, booking.BaseAmount, booking.VATAmount,
			booking.LevyAmount, booking.TotalAmount, booking.AdditionalNotes, booking.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, booking)
	assert.NoError(suite.T(), err)
}

func (suite *BookingRepoTestSuite) TestGetByID_NotFound() {
	bookingID := uuid.New()

	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings`).
		WithArgs(suite.userID, bookingID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	booking, err := suite.repo.GetByID(suite.context, suite.userID, bookingID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), booking)
}

func bookingRowColumns() []string {
	return []string{
		"id", "user_id", "service_ids", "equipment_option_id", "event_date",
		"event_location", "distance_km", "transport_cost", "base_amount",
		"vat_amount", "levy_amount", "total_amount", "additional_notes",
		"status", "created_at", "updated_at",
	}
}

func addBookingRow(rows *pgxmock.Rows, booking *models.Booking) *pgxmock.Rows {
	return rows.AddRow(
		booking.ID, booking.UserID, booking.ServiceIDs, booking.EquipmentOptionID,
		booking.EventDate, booking.EventLocation, booking.DistanceKm,
		booking.TransportCost, booking.BaseAmount, booking.VATAmount,
		booking.LevyAmount, booking.TotalAmount, booking.AdditionalNotes,
		booking.Status, booking.CreatedAt, booking.UpdatedAt)
}

func (suite *BookingRepoTestSuite) TestListByUser_ReturnsBookings() {
	first := suite.newBooking()
	second := suite.newBooking()

	rows := pgxmock.NewRows(bookingRowColumns())
	addBookingRow(rows, first)
	addBookingRow(rows, second)

	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings`).
		WithArgs(suite.userID).
		WillReturnRows(rows)

	bookings, err := suite.repo.ListByUser(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), bookings, 2)
	assert.Equal(suite.T(), first.ID, bookings[0].ID)
	assert.Equal(suite.T(), second.ID, bookings[1].ID)
}

func (suite *BookingRepoTestSuite) TestListByUser_Empty() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings`).
		WithArgs(suite.userID).
		WillReturnRows(pgxmock.NewRows(bookingRowColumns()))

	bookings, err := suite.repo.ListByUser(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), bookings)
}

func (suite *BookingRepoTestSuite) TestListPendingWithoutInvoice() {
	orphan := suite.newBooking()
	cutoff := time.Now().Add(-5 * time.Minute)

	rows := pgxmock.NewRows(bookingRowColumns())
	addBookingRow(rows, orphan)

	suite.mock.ExpectQuery(`LEFT JOIN invoices`).
		WithArgs(cutoff).
		WillReturnRows(rows)

	bookings, err := suite.repo.ListPendingWithoutInvoice(suite.context, cutoff)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), bookings, 1)
	assert.Equal(suite.T(), orphan.ID, bookings[0].ID)
}
