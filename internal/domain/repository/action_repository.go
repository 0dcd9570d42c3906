package repository

import (
	"context"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// ActionRepository define el puerto de persistencia del registro de auditoría (colección Eylemler).
// Solo admite altas: las acciones no se modifican ni se borran.
type ActionRepository interface {
	Create(ctx context.Context, action *entity.Action) error
	// ListByCompany lista acciones de la firma; userID vacío no filtra por kullanici_id.
	ListByCompany(ctx context.Context, companyID, userID string) ([]*entity.Action, error)
}
