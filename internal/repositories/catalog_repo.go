package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ultimedia/internal/models"
)

// CatalogRepository reads the bookable services and equipment options.
type CatalogRepository interface {
	ListActiveServices(ctx context.Context) ([]*models.Service, error)
	ListActiveEquipment(ctx context.Context) ([]*models.EquipmentOption, error)
	GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Service, error)
	GetEquipmentByID(ctx context.Context, id uuid.UUID) (*models.EquipmentOption, error)
}

type catalogRepo struct {
	db Database
}

func NewCatalogRepo(db Database) CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) ListActiveServices(ctx context.Context) ([]*models.Service, error) {
	query := `
		SELECT id, title, description, category, base_price, is_active, created_at
		FROM services
		WHERE is_active = true
		ORDER BY category, title
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		svc := &models.Service{}
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.Category, &svc.BasePrice, &svc.IsActive, &svc.CreatedAt); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (r *catalogRepo) ListActiveEquipment(ctx context.Context) ([]*models.EquipmentOption, error) {
	query := `
		SELECT id, name, description, price, is_active, created_at
		FROM equipment_options
		WHERE is_active = true
		ORDER BY price
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var equipment []*models.EquipmentOption
	for rows.Next() {
		eq := &models.EquipmentOption{}
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.Description, &eq.Price, &eq.IsActive, &eq.CreatedAt); err != nil {
			return nil, err
		}
		equipment = append(equipment, eq)
	}
	return equipment, rows.Err()
}

func (r *catalogRepo) GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Service, error) {
	query := `
		SELECT id, title, description, category, base_price, is_active, created_at
		FROM services
		WHERE id = ANY($1)
		ORDER BY category, title
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		svc := &models.Service{}
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.Category, &svc.BasePrice, &svc.IsActive, &svc.CreatedAt); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (r *catalogRepo) GetEquipmentByID(ctx context.Context, id uuid.UUID) (*models.EquipmentOption, error) {
	eq := &models.EquipmentOption{}
	query := `
		SELECT id, name, description, price, is_active, created_at
		FROM equipment_options
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&eq.ID, &eq.Name, &eq.Description, &eq.Price, &eq.IsActive, &eq.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}
