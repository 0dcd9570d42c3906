package dto

import "time"

// CreateCompanyRequest entrada para crear una firma; quien la crea queda como admin.
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxID   string `json:"tax_id" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// CompanyResponse salida de una firma. InviteCode solo se expone a miembros.
type CompanyResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TaxID      string    `json:"tax_id"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	InviteCode string    `json:"invite_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VerifyInviteRequest código de invitación a verificar.
type VerifyInviteRequest struct {
	Code string `json:"code" validate:"required,len=8,numeric"`
}

// CompanySummary proyección mínima de una firma (respuesta de verificación).
type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JoinCompanyRequest unión a una firma con código y rol solicitado.
type JoinCompanyRequest struct {
	Code string `json:"code" validate:"required,len=8,numeric"`
	Role string `json:"role" validate:"omitempty,max=50"`
}

// MembershipResponse resultado de crear o unirse a una firma, con token renovado.
type MembershipResponse struct {
	Company  CompanySummary `json:"company"`
	Role     string         `json:"role"`
	JobTitle string         `json:"job_title"`
	Token    string         `json:"token"`
}

// InviteCodeResponse código vigente tras rotarlo.
type InviteCodeResponse struct {
	InviteCode string `json:"invite_code"`
}

// UpdateCompanyRequest actualización del perfil de la firma (solo admin).
type UpdateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	TaxID   *string `json:"tax_id" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
}
