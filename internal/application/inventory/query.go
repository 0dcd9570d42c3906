package inventory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/listing"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

// enrichLimit consultas simultáneas al almacén durante el enriquecimiento.
const enrichLimit = 8

// MovementView movimiento con los nombres que muestra el listado.
type MovementView struct {
	Movement                 *entity.StockMovement
	ProductName              string
	Unit                     string
	SourceWarehouseName      string
	DestinationWarehouseName string
	CounterpartyName         string
	UserName                 string
}

// MovementQuery filtros del listado. Search vacío no busca.
type MovementQuery struct {
	Kind        string
	From, To    *time.Time
	WarehouseID string
	Search      string
}

// MovementQueryUseCase lista movimientos aplicando el patrón lista/filtro/búsqueda.
type MovementQueryUseCase struct {
	movements  repository.StockMovementRepository
	stocks     repository.StockRepository
	warehouses repository.WarehouseRepository
	customers  repository.CustomerRepository
	suppliers  repository.SupplierRepository
	users      repository.UserRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(store repository.Store) *MovementQueryUseCase {
	return &MovementQueryUseCase{
		movements:  store.Movements,
		stocks:     store.Stocks,
		warehouses: store.Warehouses,
		customers:  store.Customers,
		suppliers:  store.Suppliers,
		users:      store.Users,
	}
}

// MovementAccessors campos de MovementView que usan filtros y búsqueda.
var MovementAccessors = listing.Accessors[MovementView]{
	Timestamp: func(v MovementView) time.Time { return v.Movement.Timestamp },
	Category:  func(v MovementView) string { return v.Movement.Kind },
	SearchFields: func(v MovementView) []string {
		return []string{v.ProductName, v.SourceWarehouseName, v.DestinationWarehouseName, v.CounterpartyName}
	},
}

// List obtiene los movimientos de la firma, los enriquece y aplica filtros y búsqueda.
// Tipo y depósito acotan la consulta; la búsqueda solo ignora el rango de fechas.
func (uc *MovementQueryUseCase) List(ctx context.Context, actor entity.Actor, q MovementQuery) ([]MovementView, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	if q.Kind != "" && !entity.IsValidMovementKind(q.Kind) {
		return nil, domain.ErrInvalidInput
	}
	movements, err := uc.movements.ListByCompany(ctx, actor.CompanyID, q.Kind)
	if err != nil {
		return nil, err
	}
	if q.WarehouseID != "" {
		kept := movements[:0]
		for _, m := range movements {
			if m.SourceWarehouseID == q.WarehouseID || m.DestinationWarehouseID == q.WarehouseID {
				kept = append(kept, m)
			}
		}
		movements = kept
	}

	views, err := uc.enrich(ctx, movements)
	if err != nil {
		return nil, err
	}
	list := listing.New(views, MovementAccessors)
	list.ApplyFilters(listing.Filters{From: q.From, To: q.To})
	if q.Search != "" {
		return list.Search(q.Search), nil
	}
	return list.Items(), nil
}

// enrich resuelve los nombres de cada fila en paralelo; los IDs repetidos se consultan una vez.
func (uc *MovementQueryUseCase) enrich(ctx context.Context, movements []*entity.StockMovement) ([]MovementView, error) {
	views := make([]MovementView, len(movements))
	names := newNameCache()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichLimit)
	for i, m := range movements {
		g.Go(func() error {
			v := MovementView{Movement: m}
			item, err := names.stock(gctx, uc.stocks, m.StockItemID)
			if err != nil {
				return err
			}
			if item != nil {
				v.ProductName, v.Unit = item.ProductName, item.Unit
			}
			if v.SourceWarehouseName, err = names.get(gctx, "depo:"+m.SourceWarehouseID, uc.warehouseName(m.SourceWarehouseID)); err != nil {
				return err
			}
			if m.DestinationWarehouseID != "" {
				if v.DestinationWarehouseName, err = names.get(gctx, "depo:"+m.DestinationWarehouseID, uc.warehouseName(m.DestinationWarehouseID)); err != nil {
					return err
				}
			}
			if m.CounterpartyID != "" {
				if v.CounterpartyName, err = names.get(gctx, m.Kind+":"+m.CounterpartyID, uc.counterpartyName(m)); err != nil {
					return err
				}
			}
			if v.UserName, err = names.get(gctx, "user:"+m.UserID, uc.userName(m.UserID)); err != nil {
				return err
			}
			views[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

type lookup func(ctx context.Context) (string, error)

func (uc *MovementQueryUseCase) warehouseName(id string) lookup {
	return func(ctx context.Context) (string, error) {
		w, err := uc.warehouses.GetByID(ctx, id)
		if err != nil || w == nil {
			return "", err
		}
		return w.Name, nil
	}
}

func (uc *MovementQueryUseCase) counterpartyName(m *entity.StockMovement) lookup {
	return func(ctx context.Context) (string, error) {
		switch m.Kind {
		case entity.MovementEntry:
			s, err := uc.suppliers.GetByID(ctx, m.CounterpartyID)
			if err != nil || s == nil {
				return "", err
			}
			return s.Name, nil
		case entity.MovementExit:
			c, err := uc.customers.GetByID(ctx, m.CounterpartyID)
			if err != nil || c == nil {
				return "", err
			}
			return c.Name, nil
		}
		return "", nil
	}
}

func (uc *MovementQueryUseCase) userName(id string) lookup {
	return func(ctx context.Context) (string, error) {
		u, err := uc.users.GetByID(ctx, id)
		if err != nil || u == nil {
			return "", err
		}
		return u.FullName(), nil
	}
}

// nameCache memoriza nombres e ítems por clave durante un listado.
type nameCache struct {
	mu     sync.Mutex
	names  map[string]string
	stocks map[string]*entity.StockItem
}

func newNameCache() *nameCache {
	return &nameCache{names: map[string]string{}, stocks: map[string]*entity.StockItem{}}
}

func (c *nameCache) get(ctx context.Context, key string, fetch lookup) (string, error) {
	c.mu.Lock()
	name, ok := c.names[key]
	c.mu.Unlock()
	if ok {
		return name, nil
	}
	name, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.names[key] = name
	c.mu.Unlock()
	return name, nil
}

func (c *nameCache) stock(ctx context.Context, stocks repository.StockRepository, id string) (*entity.StockItem, error) {
	c.mu.Lock()
	item, ok := c.stocks[id]
	c.mu.Unlock()
	if ok {
		return item, nil
	}
	item, err := stocks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.stocks[id] = item
	c.mu.Unlock()
	return item, nil
}
