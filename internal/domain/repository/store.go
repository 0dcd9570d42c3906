package repository

import "context"

// TxRepos repositorios atados a una misma transacción del almacén.
type TxRepos struct {
	Stocks    StockRepository
	Movements StockMovementRepository
	Orders    OrderRepository
}

// TxRunner ejecuta fn dentro de una transacción; Commit si fn devuelve nil, Rollback si no.
// ctx dentro de fn debe usarse en todas las llamadas (lleva la sesión en Mongo).
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// Store agrupa todos los repositorios de un driver de almacenamiento.
type Store struct {
	Companies  CompanyRepository
	Users      UserRepository
	Warehouses WarehouseRepository
	Customers  CustomerRepository
	Suppliers  SupplierRepository
	Stocks     StockRepository
	Movements  StockMovementRepository
	Orders     OrderRepository
	Actions    ActionRepository
	Tx         TxRunner
	Close      func(ctx context.Context) error
}
