package entity

import "time"

// Company representa una firma (tenant). InviteCode es el código de 8 dígitos para unirse.
type Company struct {
	ID         string
	Name       string
	TaxID      string
	Phone      string
	Email      string
	Address    string
	InviteCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
