package repository

import (
	"context"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (colección Kullanicilar).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateMembership escribe solo firma_id, yetki_id e is_unvani; el resto de campos se conserva.
	UpdateMembership(ctx context.Context, userID, companyID, role, jobTitle string) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
}
