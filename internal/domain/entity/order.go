package entity

import "time"

// Estados de pedido. Completed es terminal.
const (
	OrderPending   = "Pending"
	OrderApproved  = "Approved"
	OrderCompleted = "Completed"
)

// Order pedido de un cliente (colección Siparisler).
type Order struct {
	ID          string
	CompanyID   string
	CustomerID  string
	Description string
	Status      string
	CreatedAt   time.Time
	CreatedBy   string // UserID
}

// IsTerminal indica si el pedido ya no admite transiciones.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderCompleted
}

// OrderHistory entrada append-only del historial de un pedido (colección Siparis_Gecmisi).
type OrderHistory struct {
	ID          string
	OrderID     string
	Status      string
	Description string
	Timestamp   time.Time
}
