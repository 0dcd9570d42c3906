// Package memory implementa los repositorios sobre mapas en memoria (STORE_DRIVER=memory).
// Sirve para ejecuciones locales y como doble de pruebas; las transacciones se serializan
// y un error restaura la foto previa de stoklar, hareketler y siparisler.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

type db struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	companies  map[string]entity.Company
	users      map[string]entity.User
	warehouses map[string]entity.Warehouse
	customers  map[string]entity.Customer
	suppliers  map[string]entity.Supplier
	stocks     map[string]entity.StockItem
	movements  map[string]entity.StockMovement
	orders     map[string]entity.Order
	history    map[string]entity.OrderHistory
	actions    map[string]entity.Action

	// writes cuenta las escrituras por colección (útil en pruebas).
	writes map[string]int
}

// Store almacén en memoria con acceso a contadores de escritura.
type Store struct {
	db *db
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{db: &db{
		companies:  map[string]entity.Company{},
		users:      map[string]entity.User{},
		warehouses: map[string]entity.Warehouse{},
		customers:  map[string]entity.Customer{},
		suppliers:  map[string]entity.Supplier{},
		stocks:     map[string]entity.StockItem{},
		movements:  map[string]entity.StockMovement{},
		orders:     map[string]entity.Order{},
		history:    map[string]entity.OrderHistory{},
		actions:    map[string]entity.Action{},
		writes:     map[string]int{},
	}}
}

// Repositories devuelve el conjunto de repositorios sobre este almacén.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Companies:  &CompanyRepo{db: s.db},
		Users:      &UserRepo{db: s.db},
		Warehouses: &WarehouseRepo{db: s.db},
		Customers:  &CustomerRepo{db: s.db},
		Suppliers:  &SupplierRepo{db: s.db},
		Stocks:     &StockRepo{db: s.db},
		Movements:  &MovementRepo{db: s.db},
		Orders:     &OrderRepo{db: s.db},
		Actions:    &ActionRepo{db: s.db},
		Tx:         &TxRunner{db: s.db},
		Close:      func(context.Context) error { return nil },
	}
}

// Writes número de escrituras realizadas sobre la colección indicada (p. ej. "Stoklar").
func (s *Store) Writes(collection string) int {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.writes[collection]
}

// Count número de documentos en la colección indicada.
func (s *Store) Count(collection string) int {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	switch collection {
	case "Firmalar":
		return len(s.db.companies)
	case "Kullanicilar":
		return len(s.db.users)
	case "Depolar":
		return len(s.db.warehouses)
	case "Musteriler":
		return len(s.db.customers)
	case "Tedarikciler":
		return len(s.db.suppliers)
	case "Stoklar":
		return len(s.db.stocks)
	case "Stok_Hareketleri":
		return len(s.db.movements)
	case "Siparisler":
		return len(s.db.orders)
	case "Siparis_Gecmisi":
		return len(s.db.history)
	case "Eylemler":
		return len(s.db.actions)
	}
	return 0
}

// TxRunner serializa las transacciones y revierte ante error.
type TxRunner struct {
	db *db
}

var _ repository.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn con los repositorios del almacén; si fn falla restaura la foto previa.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	r.db.txMu.Lock()
	defer r.db.txMu.Unlock()

	snap := r.db.snapshot()
	err := fn(ctx, repository.TxRepos{
		Stocks:    &StockRepo{db: r.db},
		Movements: &MovementRepo{db: r.db},
		Orders:    &OrderRepo{db: r.db},
	})
	if err != nil {
		r.db.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	stocks    map[string]entity.StockItem
	movements map[string]entity.StockMovement
	orders    map[string]entity.Order
	history   map[string]entity.OrderHistory
	writes    map[string]int
}

func (d *db) snapshot() snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot{
		stocks:    cloneMap(d.stocks),
		movements: cloneMap(d.movements),
		orders:    cloneMap(d.orders),
		history:   cloneMap(d.history),
		writes:    cloneMap(d.writes),
	}
}

func (d *db) restore(s snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stocks = s.stocks
	d.movements = s.movements
	d.orders = s.orders
	d.history = s.history
	d.writes = s.writes
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// collect copia los valores que cumplen keep, ordenados por less.
func collect[V any](m map[string]V, keep func(V) bool, less func(a, b V) bool) []*V {
	out := make([]*V, 0)
	for _, v := range m {
		if keep(v) {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(*out[i], *out[j]) })
	return out
}
