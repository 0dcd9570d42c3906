package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Trackit-api/internal/domain/repository"
	"github.com/jhoicas/Trackit-api/pkg/config"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

// Open conecta a PostgreSQL, aplica migraciones si DB_AUTO_MIGRATE está activo
// y devuelve todos los repositorios sobre el pool.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (repository.Store, error) {
	if cfg.AutoMigrate {
		version, err := Migrate(cfg.ConnectionString())
		if err != nil {
			return repository.Store{}, err
		}
		log.Info().Uint("version", version).Msg("migraciones aplicadas")
	}
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return repository.Store{}, fmt.Errorf("postgres: %w", err)
	}
	return NewStore(pool), nil
}

// NewStore arma los repositorios sobre un pool ya abierto.
func NewStore(pool *pgxpool.Pool) repository.Store {
	return repository.Store{
		Companies:  NewCompanyRepository(pool),
		Users:      NewUserRepository(pool),
		Warehouses: NewWarehouseRepository(pool),
		Customers:  NewCustomerRepository(pool),
		Suppliers:  NewSupplierRepository(pool),
		Stocks:     NewStockRepository(pool),
		Movements:  NewStockMovementRepository(pool),
		Orders:     NewOrderRepository(pool),
		Actions:    NewActionRepository(pool),
		Tx:         NewTxRunner(pool),
		Close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}
