package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un producto almacenado en una bodega (colección Stoklar).
// Quantity nunca es negativa en reposo.
type StockItem struct {
	ID          string
	CompanyID   string
	WarehouseID string
	ProductName string
	Unit        string // kg, adet, lt...
	Quantity    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
