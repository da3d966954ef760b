package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ultimedia/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog(services map[string]string, equipment map[string]string) (Catalog, map[string]uuid.UUID, map[string]uuid.UUID) {
	var svcs []*models.Service
	svcIDs := make(map[string]uuid.UUID)
	for name, price := range services {
		id := uuid.New()
		svcIDs[name] = id
		svcs = append(svcs, &models.Service{ID: id, Title: name, BasePrice: dec(price), IsActive: true})
	}

	var eqs []*models.EquipmentOption
	eqIDs := make(map[string]uuid.UUID)
	for name, price := range equipment {
		id := uuid.New()
		eqIDs[name] = id
		eqs = append(eqs, &models.EquipmentOption{ID: id, Name: name, Price: dec(price), IsActive: true})
	}

	return NewCatalog(svcs, eqs), svcIDs, eqIDs
}

func TestCompute_FullBreakdown(t *testing.T) {
	cat, svcIDs, eqIDs := testCatalog(
		map[string]string{"photography": "10000"},
		map[string]string{"led wall": "5000"},
	)

	eqID := eqIDs["led wall"]
	got, err := Compute([]uuid.UUID{svcIDs["photography"]}, &eqID, dec("10"), dec("50"), cat)
	require.NoError(t, err)

	assert.True(t, got.TransportCost.Equal(dec("500")), "transport = %s", got.TransportCost)
	assert.True(t, got.BaseAmount.Equal(dec("15500")), "base = %s", got.BaseAmount)
	assert.True(t, got.VATAmount.Equal(dec("2480")), "vat = %s", got.VATAmount)
	assert.True(t, got.LevyAmount.Equal(dec("4.65")), "levy = %s", got.LevyAmount)
	assert.True(t, got.TotalAmount.Equal(dec("17984.65")), "total = %s", got.TotalAmount)
}

func TestCompute_NoEquipmentZeroDistance(t *testing.T) {
	cat, svcIDs, _ := testCatalog(
		map[string]string{"video": "8000", "audio": "2000"},
		nil,
	)

	got, err := Compute([]uuid.UUID{svcIDs["video"], svcIDs["audio"]}, nil, decimal.Zero, dec("50"), cat)
	require.NoError(t, err)

	assert.True(t, got.TransportCost.IsZero())
	assert.True(t, got.EquipmentCost.IsZero())
	assert.True(t, got.BaseAmount.Equal(dec("10000")))
	assert.True(t, got.VATAmount.Equal(dec("1600")))
	assert.True(t, got.LevyAmount.Equal(dec("3")))
	assert.True(t, got.TotalAmount.Equal(dec("11603")))
}

func TestCompute_TotalIsSumOfComponents(t *testing.T) {
	cat, svcIDs, eqIDs := testCatalog(
		map[string]string{"a": "1234.56", "b": "789.01"},
		map[string]string{"rig": "250.25"},
	)

	eqID := eqIDs["rig"]
	got, err := Compute([]uuid.UUID{svcIDs["a"], svcIDs["b"]}, &eqID, dec("7.5"), dec("50"), cat)
	require.NoError(t, err)

	wantBase := got.ServicesTotal.Add(got.EquipmentCost).Add(got.TransportCost)
	assert.True(t, got.BaseAmount.Equal(wantBase))
	assert.True(t, got.TotalAmount.Equal(got.BaseAmount.Add(got.VATAmount).Add(got.LevyAmount)))
	assert.False(t, got.TotalAmount.IsNegative())
}

func TestCompute_DuplicateServiceCountedOnce(t *testing.T) {
	cat, svcIDs, _ := testCatalog(map[string]string{"photography": "10000"}, nil)

	id := svcIDs["photography"]
	got, err := Compute([]uuid.UUID{id, id, id}, nil, decimal.Zero, dec("50"), cat)
	require.NoError(t, err)

	assert.True(t, got.ServicesTotal.Equal(dec("10000")))
}

func TestCompute_Idempotent(t *testing.T) {
	cat, svcIDs, _ := testCatalog(map[string]string{"photography": "10000"}, nil)

	first, err := Compute([]uuid.UUID{svcIDs["photography"]}, nil, dec("12"), dec("50"), cat)
	require.NoError(t, err)
	second, err := Compute([]uuid.UUID{svcIDs["photography"]}, nil, dec("12"), dec("50"), cat)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_EmptySelection(t *testing.T) {
	cat, _, _ := testCatalog(map[string]string{"photography": "10000"}, nil)

	_, err := Compute(nil, nil, decimal.Zero, dec("50"), cat)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestCompute_UnknownService(t *testing.T) {
	cat, _, _ := testCatalog(map[string]string{"photography": "10000"}, nil)

	_, err := Compute([]uuid.UUID{uuid.New()}, nil, decimal.Zero, dec("50"), cat)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestCompute_InactiveServiceNotPriceable(t *testing.T) {
	inactive := &models.Service{ID: uuid.New(), Title: "retired", BasePrice: dec("100"), IsActive: false}
	cat := NewCatalog([]*models.Service{inactive}, nil)

	_, err := Compute([]uuid.UUID{inactive.ID}, nil, decimal.Zero, dec("50"), cat)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestCompute_UnknownEquipment(t *testing.T) {
	cat, svcIDs, _ := testCatalog(map[string]string{"photography": "10000"}, nil)

	bogus := uuid.New()
	_, err := Compute([]uuid.UUID{svcIDs["photography"]}, &bogus, decimal.Zero, dec("50"), cat)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestCompute_NegativeDistance(t *testing.T) {
	cat, svcIDs, _ := testCatalog(map[string]string{"photography": "10000"}, nil)

	_, err := Compute([]uuid.UUID{svcIDs["photography"]}, nil, dec("-1"), dec("50"), cat)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompute_ZeroPriceEquipmentIncluded(t *testing.T) {
	cat, svcIDs, eqIDs := testCatalog(
		map[string]string{"photography": "10000"},
		map[string]string{"basic kit": "0"},
	)

	eqID := eqIDs["basic kit"]
	got, err := Compute([]uuid.UUID{svcIDs["photography"]}, &eqID, decimal.Zero, dec("50"), cat)
	require.NoError(t, err)

	assert.True(t, got.EquipmentCost.IsZero())
	assert.True(t, got.BaseAmount.Equal(dec("10000")))
}
