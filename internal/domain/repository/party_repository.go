package repository

import (
	"context"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (colección Musteriler).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Customer, error)
}

// SupplierRepository define el puerto de persistencia para Supplier (colección Tedarikciler).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Supplier, error)
}
