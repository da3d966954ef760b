package pricing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ultimedia/internal/models"
)

var (
	// ErrInvalidSelection reports an empty selection or an id that does not
	// resolve to an active catalog entry.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrInvalidInput reports an out-of-range numeric input.
	ErrInvalidInput = errors.New("invalid input")
)

// VAT is charged at a fixed 16% of the base amount, the levy at 0.03%.
var (
	vatRate  = decimal.RequireFromString("0.16")
	levyRate = decimal.RequireFromString("0.0003")
)

// Catalog is a read-only snapshot of the active services and equipment
// options used for one pricing computation.
type Catalog struct {
	Services  map[uuid.UUID]*models.Service
	Equipment map[uuid.UUID]*models.EquipmentOption
}

// NewCatalog indexes catalog listings by id. Inactive entries are dropped so
// they cannot be priced.
func NewCatalog(services []*models.Service, equipment []*models.EquipmentOption) Catalog {
	cat := Catalog{
		Services:  make(map[uuid.UUID]*models.Service, len(services)),
		Equipment: make(map[uuid.UUID]*models.EquipmentOption, len(equipment)),
	}
	for _, s := range services {
		if s.IsActive {
			cat.Services[s.ID] = s
		}
	}
	for _, e := range equipment {
		if e.IsActive {
			cat.Equipment[e.ID] = e
		}
	}
	return cat
}

// Breakdown is an itemized quote. TotalAmount is exactly
// BaseAmount + VATAmount + LevyAmount; no rounding is applied here, display
// formatting is a presentation concern.
type Breakdown struct {
	ServicesTotal decimal.Decimal `json:"servicesTotal"`
	EquipmentCost decimal.Decimal `json:"equipmentCost"`
	TransportCost decimal.Decimal `json:"transportCost"`
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	LevyAmount    decimal.Decimal `json:"levyAmount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// Compute prices a selection against a catalog snapshot. Pure and
// deterministic: same snapshot and inputs, same breakdown. Duplicate service
// ids are counted once.
func Compute(serviceIDs []uuid.UUID, equipmentID *uuid.UUID, distanceKm, ratePerKm decimal.Decimal, cat Catalog) (Breakdown, error) {
	if len(serviceIDs) == 0 {
		return Breakdown{}, fmt.Errorf("%w: at least one service must be selected", ErrInvalidSelection)
	}
	if distanceKm.IsNegative() {
		return Breakdown{}, fmt.Errorf("%w: distance must be non-negative", ErrInvalidInput)
	}
	if ratePerKm.IsNegative() {
		return Breakdown{}, fmt.Errorf("%w: transport rate must be non-negative", ErrInvalidInput)
	}

	seen := make(map[uuid.UUID]bool, len(serviceIDs))
	servicesTotal := decimal.Zero
	for _, id := range serviceIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		svc, ok := cat.Services[id]
		if !ok {
			return Breakdown{}, fmt.Errorf("%w: service %s is not available", ErrInvalidSelection, id)
		}
		servicesTotal = servicesTotal.Add(svc.BasePrice)
	}

	equipmentCost := decimal.Zero
	if equipmentID != nil {
		eq, ok := cat.Equipment[*equipmentID]
		if !ok {
			return Breakdown{}, fmt.Errorf("%w: equipment option %s is not available", ErrInvalidSelection, *equipmentID)
		}
		equipmentCost = eq.Price
	}

	transportCost := distanceKm.Mul(ratePerKm)
	baseAmount := servicesTotal.Add(equipmentCost).Add(transportCost)
	vatAmount := baseAmount.Mul(vatRate)
	levyAmount := baseAmount.Mul(levyRate)
	totalAmount := baseAmount.Add(vatAmount).Add(levyAmount)

	return Breakdown{
		ServicesTotal: servicesTotal,
		EquipmentCost: equipmentCost,
		TransportCost: transportCost,
		BaseAmount:    baseAmount,
		VATAmount:     vatAmount,
		LevyAmount:    levyAmount,
		TotalAmount:   totalAmount,
	}, nil
}
