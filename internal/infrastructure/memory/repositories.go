package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository       = (*CompanyRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.WarehouseRepository     = (*WarehouseRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.ActionRepository        = (*ActionRepo)(nil)
)

// CompanyRepo Firmalar en memoria.
type CompanyRepo struct{ db *db }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.companies[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.companies[c.ID] = *c
	r.db.writes["Firmalar"]++
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) FindByInviteCode(_ context.Context, code string) ([]*entity.Company, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.companies,
		func(c entity.Company) bool { return c.InviteCode == code },
		func(a, b entity.Company) bool { return a.CreatedAt.Before(b.CreatedAt) },
	), nil
}

func (r *CompanyRepo) UpdateInviteCode(_ context.Context, id, code string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.companies[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.InviteCode = code
	r.db.companies[id] = c
	r.db.writes["Firmalar"]++
	return nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.companies[c.ID] = *c
	r.db.writes["Firmalar"]++
	return nil
}

// UserRepo Kullanicilar en memoria.
type UserRepo struct{ db *db }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.db.users[u.ID] = *u
	r.db.writes["Kullanicilar"]++
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) UpdateMembership(_ context.Context, userID, companyID, role, jobTitle string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.CompanyID, u.Role, u.JobTitle = companyID, role, jobTitle
	r.db.users[userID] = u
	r.db.writes["Kullanicilar"]++
	return nil
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.users,
		func(u entity.User) bool { return u.CompanyID == companyID },
		func(a, b entity.User) bool { return a.Name < b.Name },
	), nil
}

// WarehouseRepo Depolar en memoria.
type WarehouseRepo struct{ db *db }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.warehouses[w.ID] = *w
	r.db.writes["Depolar"]++
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	w, ok := r.db.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.warehouses[w.ID] = *w
	r.db.writes["Depolar"]++
	return nil
}

func (r *WarehouseRepo) ListByCompany(_ context.Context, companyID string, onlyActive bool) ([]*entity.Warehouse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.warehouses,
		func(w entity.Warehouse) bool { return w.CompanyID == companyID && (!onlyActive || w.Active) },
		func(a, b entity.Warehouse) bool { return a.Name < b.Name },
	), nil
}

// CustomerRepo Musteriler en memoria.
type CustomerRepo struct{ db *db }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.customers[c.ID] = *c
	r.db.writes["Musteriler"]++
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Customer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.customers,
		func(c entity.Customer) bool { return c.CompanyID == companyID },
		func(a, b entity.Customer) bool { return a.Name < b.Name },
	), nil
}

// SupplierRepo Tedarikciler en memoria.
type SupplierRepo struct{ db *db }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.suppliers[s.ID] = *s
	r.db.writes["Tedarikciler"]++
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SupplierRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Supplier, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.suppliers,
		func(s entity.Supplier) bool { return s.CompanyID == companyID },
		func(a, b entity.Supplier) bool { return a.Name < b.Name },
	), nil
}

// StockRepo Stoklar en memoria.
type StockRepo struct{ db *db }

func (r *StockRepo) Create(_ context.Context, s *entity.StockItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.stocks[s.ID] = *s
	r.db.writes["Stoklar"]++
	return nil
}

func (r *StockRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.stocks[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// GetForUpdate equivale a GetByID: TxRunner ya serializa las transacciones.
func (r *StockRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *StockRepo) SetQuantity(_ context.Context, id string, expected, next decimal.Decimal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stocks[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !s.Quantity.Equal(expected) {
		return domain.ErrConflict
	}
	s.Quantity = next
	r.db.stocks[id] = s
	r.db.writes["Stoklar"]++
	return nil
}

func (r *StockRepo) FindInWarehouse(_ context.Context, warehouseID, productName, unit string) (*entity.StockItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, s := range r.db.stocks {
		if s.WarehouseID == warehouseID && s.ProductName == productName && s.Unit == unit {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *StockRepo) ListByWarehouse(_ context.Context, companyID, warehouseID string) ([]*entity.StockItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.stocks,
		func(s entity.StockItem) bool { return s.CompanyID == companyID && s.WarehouseID == warehouseID },
		func(a, b entity.StockItem) bool { return a.ProductName < b.ProductName },
	), nil
}

func (r *StockRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.StockItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.stocks,
		func(s entity.StockItem) bool { return s.CompanyID == companyID },
		func(a, b entity.StockItem) bool { return a.ProductName < b.ProductName },
	), nil
}

// MovementRepo Stok_Hareketleri en memoria.
type MovementRepo struct{ db *db }

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.movements[m.ID] = *m
	r.db.writes["Stok_Hareketleri"]++
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	m, ok := r.db.movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MovementRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.movements[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.movements, id)
	r.db.writes["Stok_Hareketleri"]++
	return nil
}

func (r *MovementRepo) ListByCompany(_ context.Context, companyID, kind string) ([]*entity.StockMovement, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.movements,
		func(m entity.StockMovement) bool { return m.CompanyID == companyID && (kind == "" || m.Kind == kind) },
		func(a, b entity.StockMovement) bool { return a.Timestamp.After(b.Timestamp) },
	), nil
}

// OrderRepo Siparisler y Siparis_Gecmisi en memoria.
type OrderRepo struct{ db *db }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.orders[o.ID] = *o
	r.db.writes["Siparisler"]++
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	o, ok := r.db.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	o, ok := r.db.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.db.orders[id] = o
	r.db.writes["Siparisler"]++
	return nil
}

func (r *OrderRepo) ListByCompany(_ context.Context, companyID, customerID, status string) ([]*entity.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.orders,
		func(o entity.Order) bool {
			return o.CompanyID == companyID &&
				(customerID == "" || o.CustomerID == customerID) &&
				(status == "" || o.Status == status)
		},
		func(a, b entity.Order) bool { return a.CreatedAt.After(b.CreatedAt) },
	), nil
}

func (r *OrderRepo) AppendHistory(_ context.Context, h *entity.OrderHistory) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.history[h.ID] = *h
	r.db.writes["Siparis_Gecmisi"]++
	return nil
}

func (r *OrderRepo) ListHistory(_ context.Context, orderID string) ([]*entity.OrderHistory, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.history,
		func(h entity.OrderHistory) bool { return h.OrderID == orderID },
		func(a, b entity.OrderHistory) bool { return a.Timestamp.Before(b.Timestamp) },
	), nil
}

// ActionRepo Eylemler en memoria.
type ActionRepo struct{ db *db }

func (r *ActionRepo) Create(_ context.Context, a *entity.Action) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.actions[a.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.actions[a.ID] = *a
	r.db.writes["Eylemler"]++
	return nil
}

func (r *ActionRepo) ListByCompany(_ context.Context, companyID, userID string) ([]*entity.Action, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collect(r.db.actions,
		func(a entity.Action) bool { return a.CompanyID == companyID && (userID == "" || a.UserID == userID) },
		func(a, b entity.Action) bool { return a.Timestamp.After(b.Timestamp) },
	), nil
}
