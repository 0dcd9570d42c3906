package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

type captureRenderer struct{ got *MovementReport }

func (r *captureRenderer) RenderMovementReport(_ context.Context, report MovementReport) ([]byte, error) {
	r.got = &report
	return []byte("%PDF-fake"), nil
}

func TestMovementReport_TotalesPorTipo(t *testing.T) {
	f := newFixture(t)
	seedMovements(t, f)
	renderer := &captureRenderer{}
	uc := NewMovementReportUseCase(NewMovementQueryUseCase(f.repos), f.repos.Companies, renderer)

	doc, err := uc.Export(f.ctx, clerk, MovementQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)

	require.NotNil(t, renderer.got)
	assert.Equal(t, "Firma", renderer.got.Company.Name)
	assert.Equal(t, "Mehmet", renderer.got.GeneratedBy)
	assert.Len(t, renderer.got.Rows, 3)
	assert.True(t, qty(10).Equal(renderer.got.Totals[entity.MovementEntry]))
	assert.True(t, qty(5).Equal(renderer.got.Totals[entity.MovementExit]))
	assert.True(t, qty(20).Equal(renderer.got.Totals[entity.MovementTransfer]))
}

func TestMovementReport_RespetaFiltros(t *testing.T) {
	f := newFixture(t)
	seedMovements(t, f)
	uc := NewMovementReportUseCase(NewMovementQueryUseCase(f.repos), f.repos.Companies, &captureRenderer{})

	report, err := uc.Build(f.ctx, clerk, MovementQuery{Kind: entity.MovementExit})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	_, hasEntries := report.Totals[entity.MovementEntry]
	assert.False(t, hasEntries)

	_, err = uc.Build(f.ctx, entity.Actor{UserID: "x"}, MovementQuery{})
	assert.ErrorIs(t, err, domain.ErrNoCompany)
}
