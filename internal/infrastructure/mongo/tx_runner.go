package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción multi-documento.
type TxRunner struct {
	client *mongo.Client
	repos  repository.TxRepos
}

// NewTxRunner construye el runner. Los repos son los mismos fuera y dentro de la
// transacción: la sesión viaja en el ctx que recibe fn.
func NewTxRunner(client *mongo.Client, db *mongo.Database) *TxRunner {
	return &TxRunner{
		client: client,
		repos: repository.TxRepos{
			Stocks:    &StockRepo{col: db.Collection(colStocks)},
			Movements: &MovementRepo{col: db.Collection(colMovements)},
			Orders:    &OrderRepo{orders: db.Collection(colOrders), history: db.Collection(colOrderHistory)},
		},
	}
}

// Run abre una sesión y ejecuta fn con WithTransaction (reintenta errores transitorios).
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("iniciar sesión: %w", err)
	}
	defer session.EndSession(ctx)

	opts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, r.repos)
	}, opts)
	return err
}
