package entity

// Actor identidad explícita de quien invoca un flujo (usuario, firma y rol).
// Se construye a partir del token de sesión y se pasa a cada caso de uso.
type Actor struct {
	UserID    string
	UserName  string
	CompanyID string
	Role      string
}

// HasCompany indica si el actor ya pertenece a una firma.
func (a Actor) HasCompany() bool {
	return a.CompanyID != ""
}

// IsAdmin indica si el actor es administrador de su firma.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
