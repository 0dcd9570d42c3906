package repository

import (
	"context"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos (colección Stok_Hareketleri).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	Delete(ctx context.Context, id string) error
	// ListByCompany lista los movimientos de la firma; kind vacío no filtra por islem_turu.
	ListByCompany(ctx context.Context, companyID, kind string) ([]*entity.StockMovement, error)
}
