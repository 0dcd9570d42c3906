package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest body para POST /api/stocks.
type CreateStockItemRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	ProductName string `json:"product_name" validate:"required,min=1,max=200"`
	Unit        string `json:"unit" validate:"required,min=1,max=20"`
}

// StockItemResponse salida de un ítem de stock.
type StockItemResponse struct {
	ID          string          `json:"id"`
	WarehouseID string          `json:"warehouse_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EntryRequest body para POST /api/inventory/entries.
type EntryRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// ExitRequest body para POST /api/inventory/exits.
type ExitRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	CustomerID  string          `json:"customer_id" validate:"required"`
	OrderID     string          `json:"order_id,omitempty"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	StockItemID            string          `json:"stock_item_id" validate:"required"`
	Quantity               decimal.Decimal `json:"quantity"`
	SourceWarehouseID      string          `json:"source_warehouse_id" validate:"required"`
	DestinationWarehouseID string          `json:"destination_warehouse_id" validate:"required,nefield=SourceWarehouseID"`
	Description            string          `json:"description" validate:"omitempty,max=500"`
}

// MovementQuery parámetros de GET /api/inventory/movements (fechas YYYY-MM-DD).
type MovementQuery struct {
	Kind        string `query:"kind" validate:"omitempty,oneof=entry exit transfer"`
	From        string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	WarehouseID string `query:"warehouse_id"`
	Q           string `query:"q" validate:"omitempty,max=100"`
}

// MovementResponse salida de un movimiento, con nombres resueltos en los listados.
type MovementResponse struct {
	ID                       string          `json:"id"`
	Kind                     string          `json:"kind"`
	Description              string          `json:"description"`
	Quantity                 decimal.Decimal `json:"quantity"`
	ResultingQuantity        decimal.Decimal `json:"resulting_quantity"`
	StockItemID              string          `json:"stock_item_id"`
	ProductName              string          `json:"product_name,omitempty"`
	Unit                     string          `json:"unit,omitempty"`
	SourceWarehouseID        string          `json:"source_warehouse_id"`
	SourceWarehouseName      string          `json:"source_warehouse_name,omitempty"`
	DestinationWarehouseID   string          `json:"destination_warehouse_id,omitempty"`
	DestinationWarehouseName string          `json:"destination_warehouse_name,omitempty"`
	CounterpartyID           string          `json:"counterparty_id,omitempty"`
	CounterpartyName         string          `json:"counterparty_name,omitempty"`
	OrderID                  string          `json:"order_id,omitempty"`
	UserID                   string          `json:"user_id"`
	UserName                 string          `json:"user_name,omitempty"`
	Timestamp                time.Time       `json:"timestamp"`
}
