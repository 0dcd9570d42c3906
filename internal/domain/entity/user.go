package entity

import "time"

// Roles válidos para User (yetki_id).
const (
	RoleAdmin               = "admin"
	RoleWarehouseClerk      = "depo_gorevlisi"
	RoleWarehouseSupervisor = "depo_sorumlusu"
	RoleWarehouseManager    = "depo_yoneticisi"
)

// Unvanes (is_unvani) asociados a cada rol.
const (
	JobTitleAdmin               = "Firma Yöneticisi"
	JobTitleWarehouseClerk      = "Depo Görevlisi"
	JobTitleWarehouseSupervisor = "Depo Sorumlusu"
	JobTitleWarehouseManager    = "Depo Yöneticisi"
)

// JoinRole resuelve el rol solicitado al unirse a una firma y su unvan.
// Un rol no reconocido (incluido admin) queda como depo_gorevlisi.
func JoinRole(requested string) (role, jobTitle string) {
	switch requested {
	case RoleWarehouseSupervisor:
		return RoleWarehouseSupervisor, JobTitleWarehouseSupervisor
	case RoleWarehouseManager:
		return RoleWarehouseManager, JobTitleWarehouseManager
	default:
		return RoleWarehouseClerk, JobTitleWarehouseClerk
	}
}

// Estados de User.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User representa un usuario. CompanyID, Role y JobTitle se asignan al unirse a una firma.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Surname      string
	Phone        string
	Role         string
	JobTitle     string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre visible del usuario.
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}
