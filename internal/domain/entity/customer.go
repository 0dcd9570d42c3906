package entity

import "time"

// Customer representa un cliente de la firma (contraparte en salidas y pedidos).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}
