package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/inventory"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

// LedgerUseCase registra entradas, salidas y transferencias de stock.
// Cada mutación corre en una transacción del almacén (cantidad + movimiento + pedido);
// las acciones de auditoría se publican después del commit.
type LedgerUseCase struct {
	tx         repository.TxRunner
	stocks     repository.StockRepository
	movements  repository.StockMovementRepository
	warehouses repository.WarehouseRepository
	customers  repository.CustomerRepository
	suppliers  repository.SupplierRepository
	orders     repository.OrderRepository
	audit      audit.Publisher
	log        *logger.Logger
	now        func() time.Time
}

// NewLedgerUseCase construye el caso de uso sobre los repositorios del almacén.
func NewLedgerUseCase(store repository.Store, publisher audit.Publisher, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		tx:         store.Tx,
		stocks:     store.Stocks,
		movements:  store.Movements,
		warehouses: store.Warehouses,
		customers:  store.Customers,
		suppliers:  store.Suppliers,
		orders:     store.Orders,
		audit:      publisher,
		log:        log.Component("ledger"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// EntryInput entrada de mercancía a un ítem de stock.
type EntryInput struct {
	StockItemID string
	Quantity    decimal.Decimal
	SupplierID  string // opcional
	Description string
}

// ExitInput salida de mercancía hacia un cliente, opcionalmente cerrando un pedido.
type ExitInput struct {
	StockItemID string
	Quantity    decimal.Decimal
	CustomerID  string
	OrderID     string // opcional
	Description string
}

// TransferInput traslado de cantidad entre dos bodegas de la firma.
type TransferInput struct {
	StockItemID            string
	Quantity               decimal.Decimal
	SourceWarehouseID      string
	DestinationWarehouseID string
	Description            string
}

// RecordEntry suma la cantidad al ítem y registra un movimiento de entrada.
func (uc *LedgerUseCase) RecordEntry(ctx context.Context, actor entity.Actor, in EntryInput) (*entity.StockMovement, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	if !inventory.ValidQuantity(in.Quantity) || in.StockItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.stockOfCompany(ctx, actor, in.StockItemID)
	if err != nil {
		return nil, err
	}
	if in.SupplierID != "" {
		s, err := uc.suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return nil, err
		}
		if s == nil || s.CompanyID != actor.CompanyID {
			return nil, domain.ErrNotFound
		}
	}

	now := uc.now()
	mov := &entity.StockMovement{
		ID:                uuid.New().String(),
		CompanyID:         actor.CompanyID,
		Kind:              entity.MovementEntry,
		Description:       in.Description,
		Quantity:          in.Quantity,
		StockItemID:       item.ID,
		SourceWarehouseID: item.WarehouseID,
		CounterpartyID:    in.SupplierID,
		UserID:            actor.UserID,
		Timestamp:         now,
	}
	err = uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		cur, err := lockStock(ctx, repos.Stocks, item.ID)
		if err != nil {
			return err
		}
		newQty, err := inventory.ApplyEntry(cur.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Stocks.SetQuantity(ctx, cur.ID, cur.Quantity, newQty); err != nil {
			return err
		}
		mov.ResultingQuantity = newQty
		return repos.Movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, audit.NewEvent(actor, entity.ActionStockEntry,
		fmt.Sprintf("Entrada de %s %s de %s", in.Quantity, item.Unit, item.ProductName), mov.ID, now))
	return mov, nil
}

// RecordExit resta la cantidad al ítem y registra la salida hacia el cliente.
// La disponibilidad se valida antes de escribir y otra vez bajo la transacción.
// Con OrderID, el pedido pasa a Completed y se agrega una entrada a su historial.
func (uc *LedgerUseCase) RecordExit(ctx context.Context, actor entity.Actor, in ExitInput) (*entity.StockMovement, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	if !inventory.ValidQuantity(in.Quantity) || in.StockItemID == "" || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.stockOfCompany(ctx, actor, in.StockItemID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	if item.Quantity.LessThan(in.Quantity) {
		return nil, domain.ErrInsufficientStock
	}
	if in.OrderID != "" {
		order, err := uc.orders.GetByID(ctx, in.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil || order.CompanyID != actor.CompanyID {
			return nil, domain.ErrNotFound
		}
		if order.IsTerminal() {
			return nil, domain.ErrOrderCompleted
		}
	}

	now := uc.now()
	mov := &entity.StockMovement{
		ID:                uuid.New().String(),
		CompanyID:         actor.CompanyID,
		Kind:              entity.MovementExit,
		Description:       in.Description,
		Quantity:          in.Quantity,
		StockItemID:       item.ID,
		SourceWarehouseID: item.WarehouseID,
		CounterpartyID:    in.CustomerID,
		OrderID:           in.OrderID,
		UserID:            actor.UserID,
		Timestamp:         now,
	}
	err = uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		cur, err := lockStock(ctx, repos.Stocks, item.ID)
		if err != nil {
			return err
		}
		newQty, err := inventory.ApplyExit(cur.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Stocks.SetQuantity(ctx, cur.ID, cur.Quantity, newQty); err != nil {
			return err
		}
		mov.ResultingQuantity = newQty
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}
		if in.OrderID == "" {
			return nil
		}
		return completeOrder(ctx, repos.Orders, in.OrderID, now, mov.ID)
	})
	if err != nil {
		return nil, err
	}

	events := []audit.Event{audit.NewEvent(actor, entity.ActionStockExit,
		fmt.Sprintf("Salida de %s %s de %s a %s", in.Quantity, item.Unit, item.ProductName, customer.Name), mov.ID, now)}
	if in.OrderID != "" {
		events = append(events, audit.NewEvent(actor, entity.ActionOrderCompleted,
			fmt.Sprintf("Pedido de %s completado", customer.Name), in.OrderID, now))
	}
	uc.publish(ctx, events...)
	return mov, nil
}

// RecordTransfer descuenta del ítem en la bodega origen y suma al ítem del mismo producto
// (nombre + unidad) en la bodega destino, creándolo con cantidad 0 si no existe.
func (uc *LedgerUseCase) RecordTransfer(ctx context.Context, actor entity.Actor, in TransferInput) (*entity.StockMovement, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	if !inventory.ValidQuantity(in.Quantity) || in.StockItemID == "" ||
		in.SourceWarehouseID == "" || in.DestinationWarehouseID == "" ||
		in.SourceWarehouseID == in.DestinationWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	src, err := uc.warehouseOfCompany(ctx, actor, in.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	dst, err := uc.warehouseOfCompany(ctx, actor, in.DestinationWarehouseID)
	if err != nil {
		return nil, err
	}
	if !dst.Active {
		return nil, domain.ErrInactiveWarehouse
	}
	item, err := uc.stockOfCompany(ctx, actor, in.StockItemID)
	if err != nil {
		return nil, err
	}
	if item.WarehouseID != src.ID {
		return nil, fmt.Errorf("%w: el ítem no está en la bodega origen", domain.ErrInvalidInput)
	}
	if item.Quantity.LessThan(in.Quantity) {
		return nil, domain.ErrInsufficientStock
	}

	now := uc.now()
	mov := &entity.StockMovement{
		ID:                     uuid.New().String(),
		CompanyID:              actor.CompanyID,
		Kind:                   entity.MovementTransfer,
		Description:            in.Description,
		Quantity:               in.Quantity,
		StockItemID:            item.ID,
		SourceWarehouseID:      src.ID,
		DestinationWarehouseID: dst.ID,
		UserID:                 actor.UserID,
		Timestamp:              now,
	}
	err = uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		cur, err := lockStock(ctx, repos.Stocks, item.ID)
		if err != nil {
			return err
		}
		srcQty, err := inventory.ApplyExit(cur.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Stocks.SetQuantity(ctx, cur.ID, cur.Quantity, srcQty); err != nil {
			return err
		}

		target, err := destinationItem(ctx, repos.Stocks, cur, dst.ID, now)
		if err != nil {
			return err
		}
		dstQty, err := inventory.ApplyEntry(target.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Stocks.SetQuantity(ctx, target.ID, target.Quantity, dstQty); err != nil {
			return err
		}

		mov.ResultingQuantity = srcQty
		return repos.Movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, audit.NewEvent(actor, entity.ActionTransfer,
		fmt.Sprintf("Transferencia de %s %s de %s: %s → %s", in.Quantity, item.Unit, item.ProductName, src.Name, dst.Name),
		mov.ID, now))
	return mov, nil
}

// DeleteMovement elimina un movimiento (solo admin). Las cantidades no se revierten:
// queda una acción compensatoria en el registro de auditoría.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, actor entity.Actor, movementID string) error {
	if !actor.HasCompany() {
		return domain.ErrNoCompany
	}
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	mov, err := uc.movements.GetByID(ctx, movementID)
	if err != nil {
		return err
	}
	if mov == nil || mov.CompanyID != actor.CompanyID {
		return domain.ErrNotFound
	}
	if err := uc.movements.Delete(ctx, mov.ID); err != nil {
		return err
	}
	uc.publish(ctx, audit.NewEvent(actor, entity.ActionMovementDeleted,
		fmt.Sprintf("Movimiento %s de %s eliminado", mov.Kind, mov.Quantity), mov.ID, uc.now()))
	return nil
}

func (uc *LedgerUseCase) stockOfCompany(ctx context.Context, actor entity.Actor, id string) (*entity.StockItem, error) {
	item, err := uc.stocks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *LedgerUseCase) warehouseOfCompany(ctx context.Context, actor entity.Actor, id string) (*entity.Warehouse, error) {
	w, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil || w.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (uc *LedgerUseCase) publish(ctx context.Context, events ...audit.Event) {
	audit.Emit(ctx, uc.audit, uc.log, events...)
}

func lockStock(ctx context.Context, stocks repository.StockRepository, id string) (*entity.StockItem, error) {
	cur, err := stocks.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, domain.ErrNotFound
	}
	return cur, nil
}

// destinationItem devuelve (bloqueado) el ítem del mismo producto en la bodega destino, creándolo si falta.
func destinationItem(ctx context.Context, stocks repository.StockRepository, src *entity.StockItem, warehouseID string, now time.Time) (*entity.StockItem, error) {
	existing, err := stocks.FindInWarehouse(ctx, warehouseID, src.ProductName, src.Unit)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return lockStock(ctx, stocks, existing.ID)
	}
	created := &entity.StockItem{
		ID:          uuid.New().String(),
		CompanyID:   src.CompanyID,
		WarehouseID: warehouseID,
		ProductName: src.ProductName,
		Unit:        src.Unit,
		Quantity:    decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := stocks.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// completeOrder cierra el pedido dentro de la transacción de la salida.
func completeOrder(ctx context.Context, orders repository.OrderRepository, orderID string, now time.Time, movementID string) error {
	order, err := orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.IsTerminal() {
		return domain.ErrOrderCompleted
	}
	if err := orders.UpdateStatus(ctx, order.ID, entity.OrderCompleted); err != nil {
		return err
	}
	return orders.AppendHistory(ctx, &entity.OrderHistory{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		Status:      entity.OrderCompleted,
		Description: fmt.Sprintf("Completado por la salida %s", movementID),
		Timestamp:   now,
	})
}
