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
)

type CatalogRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    CatalogRepository
	context context.Context
}

func (suite *CatalogRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCatalogRepo(mock)
	suite.context = context.Background()
}

func (suite *CatalogRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestCatalogRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepoTestSuite))
}

func (suite *CatalogRepoTestSuite) TestGetEquipmentByID_Found() {
	equipmentID := uuid.New()

	rows := pgxmock.NewRows([]string{"id", "name", "description", "price", "is_active", "created_at"}).
		AddRow(equipmentID, "LED Wall", (*string)(nil), decimal.RequireFromString("2000"), true, time.Now())

	suite.mock.ExpectQuery(`SELECT (.+) FROM equipment_options`).
		WithArgs(equipmentID).
		WillReturnRows(rows)

	eq, err := suite.repo.GetEquipmentByID(suite.context, equipmentID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), eq)
	assert.Equal(suite.T(), "LED Wall", eq.Name)
}

func (suite *CatalogRepoTestSuite) TestGetEquipmentByID_DeletedRowIsAbsentNotError() {
	equipmentID := uuid.New()

	suite.mock.ExpectQuery(`SELECT (.+) FROM equipment_options`).
		WithArgs(equipmentID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	eq, err := suite.repo.GetEquipmentByID(suite.context, equipmentID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), eq)
}

func (suite *CatalogRepoTestSuite) TestListActiveServices() {
	rows := pgxmock.NewRows([]string{"id", "title", "description", "category", "base_price", "is_active", "created_at"}).
		AddRow(uuid.New(), "Videography", (*string)(nil), "media", decimal.RequireFromString("10000"), true, time.Now()).
		AddRow(uuid.New(), "Photography", (*string)(nil), "media", decimal.RequireFromString("5000"), true, time.Now())

	suite.mock.ExpectQuery(`SELECT (.+) FROM services`).
		WillReturnRows(rows)

	services, err := suite.repo.ListActiveServices(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), services, 2)
	assert.Equal(suite.T(), "Videography", services[0].Title)
}
