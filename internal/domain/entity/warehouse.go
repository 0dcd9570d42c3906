package entity

import "time"

// Warehouse representa una bodega (depo). Las inactivas no aparecen en los selectores.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
