package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// StockItemInput alta de un producto en una bodega.
type StockItemInput struct {
	WarehouseID string
	ProductName string
	Unit        string
}

// CreateStockItem da de alta un ítem con cantidad 0; las cantidades solo cambian por movimientos.
func (uc *LedgerUseCase) CreateStockItem(ctx context.Context, actor entity.Actor, in StockItemInput) (*entity.StockItem, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	name, unit := strings.TrimSpace(in.ProductName), strings.TrimSpace(in.Unit)
	if name == "" || unit == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.warehouseOfCompany(ctx, actor, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !w.Active {
		return nil, domain.ErrInactiveWarehouse
	}
	existing, err := uc.stocks.FindInWarehouse(ctx, w.ID, name, unit)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.now()
	item := &entity.StockItem{
		ID:          uuid.New().String(),
		CompanyID:   actor.CompanyID,
		WarehouseID: w.ID,
		ProductName: name,
		Unit:        unit,
		Quantity:    decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.stocks.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.publish(ctx, audit.NewEvent(actor, entity.ActionStockCreated,
		fmt.Sprintf("Alta de %s (%s) en %s", name, unit, w.Name), item.ID, now))
	return item, nil
}

// ListStock lista el stock de la firma; con warehouseID solo el de esa bodega.
func (uc *LedgerUseCase) ListStock(ctx context.Context, actor entity.Actor, warehouseID string) ([]*entity.StockItem, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	if warehouseID == "" {
		return uc.stocks.ListByCompany(ctx, actor.CompanyID)
	}
	if _, err := uc.warehouseOfCompany(ctx, actor, warehouseID); err != nil {
		return nil, err
	}
	return uc.stocks.ListByWarehouse(ctx, actor.CompanyID, warehouseID)
}

// GetStockItem devuelve un ítem de la firma.
func (uc *LedgerUseCase) GetStockItem(ctx context.Context, actor entity.Actor, id string) (*entity.StockItem, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	return uc.stockOfCompany(ctx, actor, id)
}
