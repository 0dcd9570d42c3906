package dto

import "time"

// CreateOrderRequest alta de pedido para un cliente.
type CreateOrderRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// OrderQuery filtros de GET /api/orders.
type OrderQuery struct {
	Status     string `query:"status" validate:"omitempty,oneof=Pending Approved Completed"`
	CustomerID string `query:"customer_id"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderHistoryResponse entrada del historial de un pedido.
type OrderHistoryResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
