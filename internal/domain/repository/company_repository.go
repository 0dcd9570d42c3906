package repository

import (
	"context"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (colección Firmalar).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// FindByInviteCode devuelve las firmas cuyo davet_kodu coincide exactamente.
	FindByInviteCode(ctx context.Context, code string) ([]*entity.Company, error)
	UpdateInviteCode(ctx context.Context, id, code string) error
	Update(ctx context.Context, company *entity.Company) error
}
