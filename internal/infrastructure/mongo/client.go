// Package mongo implementa los repositorios sobre MongoDB (STORE_DRIVER=mongo).
// Las colecciones y los nombres de campo son los del almacén documental original
// (Firmalar, Stoklar, Stok_Hareketleri...). Las transacciones requieren replica set.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/Trackit-api/internal/domain/repository"
	"github.com/jhoicas/Trackit-api/pkg/config"
)

// Nombres de colección.
const (
	colCompanies    = "Firmalar"
	colCustomers    = "Musteriler"
	colWarehouses   = "Depolar"
	colStocks       = "Stoklar"
	colMovements    = "Stok_Hareketleri"
	colOrders       = "Siparisler"
	colOrderHistory = "Siparis_Gecmisi"
	colSuppliers    = "Tedarikciler"
	colUsers        = "Kullanicilar"
	colActions      = "Eylemler"
)

// Connect abre el cliente y verifica la conexión contra el primario.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices de las consultas por igualdad que usan los repositorios.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		colCompanies:  {{Keys: bson.D{{Key: "davet_kodu", Value: 1}}}},
		colUsers:      {{Keys: bson.D{{Key: "eposta", Value: 1}}, Options: options.Index().SetUnique(true)}},
		colWarehouses: {{Keys: bson.D{{Key: "firma_id", Value: 1}, {Key: "aktif", Value: 1}}}},
		colCustomers:  {{Keys: bson.D{{Key: "firma_id", Value: 1}}}},
		colSuppliers:  {{Keys: bson.D{{Key: "firma_id", Value: 1}}}},
		colStocks: {
			{Keys: bson.D{{Key: "firma_id", Value: 1}, {Key: "depo_id", Value: 1}}},
			{
				Keys:    bson.D{{Key: "depo_id", Value: 1}, {Key: "urun_adi", Value: 1}, {Key: "birim", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colMovements:    {{Keys: bson.D{{Key: "firma_id", Value: 1}, {Key: "islem_turu", Value: 1}, {Key: "tarih", Value: -1}}}},
		colOrders:       {{Keys: bson.D{{Key: "firma_id", Value: 1}, {Key: "musteri_id", Value: 1}, {Key: "durum", Value: 1}}}},
		colOrderHistory: {{Keys: bson.D{{Key: "siparis_id", Value: 1}}}},
		colActions:      {{Keys: bson.D{{Key: "firma_id", Value: 1}, {Key: "eylem_tarihi", Value: -1}}}},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("índices %s: %w", name, err)
		}
	}
	return nil
}

// Open conecta, asegura índices y devuelve los repositorios sobre la base configurada.
func Open(ctx context.Context, cfg config.MongoConfig) (repository.Store, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return repository.Store{}, err
	}
	db := client.Database(cfg.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return repository.Store{}, err
	}
	store := NewStore(client, db)
	return store, nil
}

// NewStore arma los repositorios sobre una base ya abierta.
func NewStore(client *mongo.Client, db *mongo.Database) repository.Store {
	return repository.Store{
		Companies:  &CompanyRepo{col: db.Collection(colCompanies)},
		Users:      &UserRepo{col: db.Collection(colUsers)},
		Warehouses: &WarehouseRepo{col: db.Collection(colWarehouses)},
		Customers:  &CustomerRepo{col: db.Collection(colCustomers)},
		Suppliers:  &SupplierRepo{col: db.Collection(colSuppliers)},
		Stocks:     &StockRepo{col: db.Collection(colStocks)},
		Movements:  &MovementRepo{col: db.Collection(colMovements)},
		Orders:     &OrderRepo{orders: db.Collection(colOrders), history: db.Collection(colOrderHistory)},
		Actions:    &ActionRepo{col: db.Collection(colActions)},
		Tx:         NewTxRunner(client, db),
		Close:      client.Disconnect,
	}
}
