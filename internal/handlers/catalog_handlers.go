package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ultimedia/internal/common"
	"ultimedia/internal/services"
)

// CatalogHandlers serves the public catalog listings.
type CatalogHandlers struct {
	catalogSvc services.CatalogServiceInterface
}

func NewCatalogHandlers(catalogSvc services.CatalogServiceInterface) *CatalogHandlers {
	return &CatalogHandlers{catalogSvc: catalogSvc}
}

// GetServices handles GET /api/bookings/services
func (h *CatalogHandlers) GetServices(c echo.Context) error {
	services, err := h.catalogSvc.ListServices(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, services)
}

// GetEquipment handles GET /api/bookings/equipment
func (h *CatalogHandlers) GetEquipment(c echo.Context) error {
	equipment, err := h.catalogSvc.ListEquipment(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, equipment)
}
