package repository

import (
	"context"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (colección Depolar).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	// ListByCompany lista las bodegas; con onlyActive=true omite las inactivas.
	ListByCompany(ctx context.Context, companyID string, onlyActive bool) ([]*entity.Warehouse, error)
}
