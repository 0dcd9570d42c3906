package entity

import "time"

// Supplier representa un proveedor de la firma (contraparte en entradas).
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}
