package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/memory"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

var (
	member   = entity.Actor{UserID: "u1", UserName: "Ayşe", CompanyID: "f1", Role: entity.RoleWarehouseManager}
	outsider = entity.Actor{UserID: "u9", UserName: "Otro", CompanyID: "f2", Role: entity.RoleAdmin}
	homeless = entity.Actor{UserID: "u5", UserName: "Sin Firma"}
)

func TestWarehouseUseCase_CRUDYActivas(t *testing.T) {
	ctx := context.Background()
	uc := NewWarehouseUseCase(memory.New().Repositories().Warehouses)

	merkez, err := uc.Create(ctx, member, dto.CreateWarehouseRequest{Name: "Merkez"})
	require.NoError(t, err)
	assert.True(t, merkez.Active)
	sube, err := uc.Create(ctx, member, dto.CreateWarehouseRequest{Name: "Şube", Address: "Kadıköy"})
	require.NoError(t, err)

	inactive := false
	_, err = uc.Update(ctx, member, sube.ID, dto.UpdateWarehouseRequest{Active: &inactive})
	require.NoError(t, err)

	all, err := uc.List(ctx, member, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	active, err := uc.List(ctx, member, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, merkez.ID, active[0].ID)

	_, err = uc.GetByID(ctx, outsider, merkez.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, homeless, dto.CreateWarehouseRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNoCompany)
}

func TestPartyUseCases(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()
	customers := NewCustomerUseCase(repos.Customers)
	suppliers := NewSupplierUseCase(repos.Suppliers)

	_, err := customers.Create(ctx, member, dto.PartyRequest{Name: "Cliente Uno"})
	require.NoError(t, err)
	_, err = suppliers.Create(ctx, member, dto.PartyRequest{Name: "Proveedor Uno"})
	require.NoError(t, err)
	_, err = customers.Create(ctx, member, dto.PartyRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cs, err := customers.List(ctx, member)
	require.NoError(t, err)
	assert.Len(t, cs, 1)
	ss, err := suppliers.List(ctx, outsider)
	require.NoError(t, err)
	assert.Empty(t, ss)
}

func TestOrderUseCase_CreaAprobadoConHistorial(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", CompanyID: "f1", Name: "Cliente Uno"}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c2", CompanyID: "f2", Name: "Ajeno"}))
	uc := NewOrderUseCase(repos, audit.NewInlinePublisher(audit.NewWriter(repos.Actions)), logger.Nop())

	order, err := uc.Create(ctx, member, dto.CreateOrderRequest{CustomerID: "c1", Description: "20 sacos"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderApproved, order.Status)
	assert.Equal(t, "u1", order.CreatedBy)

	history, err := uc.History(ctx, member, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.OrderApproved, history[0].Status)

	_, err = uc.Create(ctx, member, dto.CreateOrderRequest{CustomerID: "c2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	approved, err := uc.List(ctx, member, dto.OrderQuery{Status: entity.OrderApproved})
	require.NoError(t, err)
	assert.Len(t, approved, 1)
	completed, err := uc.List(ctx, member, dto.OrderQuery{Status: entity.OrderCompleted})
	require.NoError(t, err)
	assert.Empty(t, completed)

	_, err = uc.History(ctx, outsider, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	actions, err := repos.Actions.ListByCompany(ctx, "f1", "")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, entity.ActionOrderCreated, actions[0].Type)
	assert.Equal(t, order.ID, actions[0].RelatedDocumentID)
}

func TestActionUseCase_FiltrosYBusqueda(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	for _, a := range []*entity.Action{
		{ID: "a1", CompanyID: "f1", UserID: "u1", UserName: "Ayşe", Type: entity.ActionStockEntry, Description: "Entrada de harina", Timestamp: day.Add(8 * time.Hour)},
		{ID: "a2", CompanyID: "f1", UserID: "u2", UserName: "Ali", Type: entity.ActionStockExit, Description: "Salida de azúcar", Timestamp: day.Add(23*time.Hour + 59*time.Minute)},
		{ID: "a3", CompanyID: "f1", UserID: "u1", UserName: "Ayşe", Type: entity.ActionStockExit, Description: "Salida de harina", Timestamp: day.AddDate(0, 0, 1)},
		{ID: "a4", CompanyID: "f2", UserID: "u9", UserName: "Otro", Type: entity.ActionStockExit, Description: "harina ajena", Timestamp: day},
	} {
		require.NoError(t, repos.Actions.Create(ctx, a))
	}
	uc := NewActionUseCase(repos.Actions)

	all, err := uc.List(ctx, member, ActionQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a3", all[0].ID, "más recientes primero")

	sameDay, err := uc.List(ctx, member, ActionQuery{From: &day, To: &day})
	require.NoError(t, err)
	assert.Len(t, sameDay, 2, "el límite superior incluye el final del día")

	exits, err := uc.List(ctx, member, ActionQuery{Type: entity.ActionStockExit, UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, exits, 1)
	assert.Equal(t, "a3", exits[0].ID)

	found, err := uc.List(ctx, member, ActionQuery{Type: entity.ActionStockEntry, Search: "HARINA"})
	require.NoError(t, err)
	assert.Len(t, found, 2, "la búsqueda recorre el conjunto sin filtrar")
}
