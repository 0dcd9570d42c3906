package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario (islem_turu).
const (
	MovementEntry    = "entry"    // giriş
	MovementExit     = "exit"     // çıkış
	MovementTransfer = "transfer" // entre bodegas
)

// IsValidMovementKind informa si kind es uno de los tipos conocidos.
func IsValidMovementKind(kind string) bool {
	switch kind {
	case MovementEntry, MovementExit, MovementTransfer:
		return true
	}
	return false
}

// StockMovement registro inmutable de un movimiento (colección Stok_Hareketleri).
type StockMovement struct {
	ID                     string
	CompanyID              string
	Kind                   string
	Description            string
	Quantity               decimal.Decimal // siempre positiva
	ResultingQuantity      decimal.Decimal // cantidad del StockItem tras el movimiento
	StockItemID            string
	SourceWarehouseID      string
	DestinationWarehouseID string // solo transfer
	CounterpartyID         string // proveedor en entry, cliente en exit
	OrderID                string
	UserID                 string
	Timestamp              time.Time
}
