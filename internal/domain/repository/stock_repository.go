package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// StockRepository define el puerto para los ítems de stock (colección Stoklar).
// Dentro de una transacción garantiza consistencia del read-then-write.
type StockRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	// GetForUpdate lee el ítem bloqueándolo cuando el motor lo soporta (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	// SetQuantity escribe next solo si la cantidad almacenada sigue siendo expected;
	// si no, devuelve domain.ErrConflict.
	SetQuantity(ctx context.Context, id string, expected, next decimal.Decimal) error
	// FindInWarehouse busca el ítem de un producto (nombre + unidad) en una bodega.
	FindInWarehouse(ctx context.Context, warehouseID, productName, unit string) (*entity.StockItem, error)
	ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.StockItem, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.StockItem, error)
}
