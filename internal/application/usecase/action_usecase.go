package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/listing"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

// ActionQuery filtros del registro de acciones. Search vacío no busca.
type ActionQuery struct {
	Type     string
	UserID   string
	From, To *time.Time
	Search   string
}

var actionAccessors = listing.Accessors[*entity.Action]{
	Timestamp: func(a *entity.Action) time.Time { return a.Timestamp },
	Category:  func(a *entity.Action) string { return a.Type },
	SearchFields: func(a *entity.Action) []string {
		return []string{a.Description, a.UserName, a.Type}
	},
}

// ActionUseCase consulta del registro de auditoría de la firma.
type ActionUseCase struct {
	repo repository.ActionRepository
}

// NewActionUseCase construye el caso de uso.
func NewActionUseCase(repo repository.ActionRepository) *ActionUseCase {
	return &ActionUseCase{repo: repo}
}

// List devuelve las acciones más recientes primero, filtradas o buscadas.
func (uc *ActionUseCase) List(ctx context.Context, actor entity.Actor, q ActionQuery) ([]dto.ActionResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	actions, err := uc.repo.ListByCompany(ctx, actor.CompanyID, q.UserID)
	if err != nil {
		return nil, err
	}
	list := listing.New(actions, actionAccessors)
	items := list.ApplyFilters(listing.Filters{From: q.From, To: q.To, Category: q.Type})
	if q.Search != "" {
		items = list.Search(q.Search)
	}
	out := make([]dto.ActionResponse, 0, len(items))
	for _, a := range items {
		out = append(out, dto.ActionResponse{
			ID:                a.ID,
			Type:              a.Type,
			Description:       a.Description,
			UserID:            a.UserID,
			UserName:          a.UserName,
			RelatedDocumentID: a.RelatedDocumentID,
			Timestamp:         a.Timestamp,
		})
	}
	return out, nil
}
