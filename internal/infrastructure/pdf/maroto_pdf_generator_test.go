package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trackit-api/internal/application/inventory"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

func TestRenderMovementReport(t *testing.T) {
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	from := at.AddDate(0, 0, -7)
	views := []inventory.MovementView{
		{
			Movement: &entity.StockMovement{
				ID: "m1", Kind: entity.MovementExit, Quantity: decimal.NewFromInt(30),
				ResultingQuantity: decimal.NewFromInt(70), Timestamp: at,
			},
			ProductName: "Harina", Unit: "kg", SourceWarehouseName: "Merkez",
			CounterpartyName: "Cliente Uno", UserName: "Mehmet",
		},
		{
			Movement: &entity.StockMovement{
				ID: "m2", Kind: entity.MovementTransfer, Quantity: decimal.NewFromInt(20),
				ResultingQuantity: decimal.NewFromInt(50), Timestamp: at.Add(-time.Hour),
			},
			ProductName: "Harina", Unit: "kg", SourceWarehouseName: "Merkez",
			DestinationWarehouseName: "Şube", UserName: "Mehmet",
		},
	}
	report := inventory.MovementReport{
		Company:     &entity.Company{ID: "f1", Name: "Depo A.Ş.", TaxID: "1234567890"},
		Query:       inventory.MovementQuery{From: &from, Search: "harina"},
		GeneratedAt: at,
		GeneratedBy: "Admin",
		Rows:        views,
		Totals: map[string]decimal.Decimal{
			entity.MovementExit:     decimal.NewFromInt(30),
			entity.MovementTransfer: decimal.NewFromInt(20),
		},
	}

	doc, err := NewMarotoPDFGenerator().RenderMovementReport(context.Background(), report)
	require.NoError(t, err)
	require.Greater(t, len(doc), 4)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestRenderMovementReport_SinFilas(t *testing.T) {
	doc, err := NewMarotoPDFGenerator().RenderMovementReport(context.Background(), inventory.MovementReport{
		Company:     &entity.Company{Name: "Vacía"},
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestDescribeQuery(t *testing.T) {
	assert.Equal(t, "ninguno", describeQuery(inventory.MovementQuery{}))
	assert.Equal(t, `tipo=Salida, búsqueda="un"`, describeQuery(inventory.MovementQuery{Kind: entity.MovementExit, Search: "un"}))
}
