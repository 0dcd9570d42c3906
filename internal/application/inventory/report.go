package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

// MovementReport datos del informe de movimientos ya filtrado.
type MovementReport struct {
	Company     *entity.Company
	Query       MovementQuery
	GeneratedAt time.Time
	GeneratedBy string
	Rows        []MovementView
	Totals      map[string]decimal.Decimal // cantidad total por tipo de movimiento
}

// ReportRenderer convierte el informe en un documento (PDF).
type ReportRenderer interface {
	RenderMovementReport(ctx context.Context, report MovementReport) ([]byte, error)
}

// MovementReportUseCase exporta el listado de movimientos con los mismos filtros que la consulta.
type MovementReportUseCase struct {
	query     *MovementQueryUseCase
	companies repository.CompanyRepository
	renderer  ReportRenderer
	now       func() time.Time
}

// NewMovementReportUseCase construye el caso de uso.
func NewMovementReportUseCase(query *MovementQueryUseCase, companies repository.CompanyRepository, renderer ReportRenderer) *MovementReportUseCase {
	return &MovementReportUseCase{
		query:     query,
		companies: companies,
		renderer:  renderer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Build arma el informe sin renderizarlo.
func (uc *MovementReportUseCase) Build(ctx context.Context, actor entity.Actor, q MovementQuery) (*MovementReport, error) {
	rows, err := uc.query.List(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	totals := make(map[string]decimal.Decimal, 3)
	for _, r := range rows {
		totals[r.Movement.Kind] = totals[r.Movement.Kind].Add(r.Movement.Quantity)
	}
	return &MovementReport{
		Company:     company,
		Query:       q,
		GeneratedAt: uc.now(),
		GeneratedBy: actor.UserName,
		Rows:        rows,
		Totals:      totals,
	}, nil
}

// Export arma y renderiza el informe.
func (uc *MovementReportUseCase) Export(ctx context.Context, actor entity.Actor, q MovementQuery) ([]byte, error) {
	report, err := uc.Build(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	doc, err := uc.renderer.RenderMovementReport(ctx, *report)
	if err != nil {
		return nil, fmt.Errorf("renderizar informe: %w", err)
	}
	return doc, nil
}
