package repository

import (
	"context"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos (Siparisler) y su historial (Siparis_Gecmisi).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// ListByCompany lista pedidos; customerID y status vacíos no filtran.
	ListByCompany(ctx context.Context, companyID, customerID, status string) ([]*entity.Order, error)
	AppendHistory(ctx context.Context, entry *entity.OrderHistory) error
	ListHistory(ctx context.Context, orderID string) ([]*entity.OrderHistory, error)
}
