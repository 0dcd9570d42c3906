package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

func TestStockRepo_SetQuantityCompareAndSet(t *testing.T) {
	repos := New().Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Stocks.Create(ctx, &entity.StockItem{ID: "s1", Quantity: decimal.NewFromInt(10)}))

	require.NoError(t, repos.Stocks.SetQuantity(ctx, "s1", decimal.NewFromInt(10), decimal.NewFromInt(7)))
	err := repos.Stocks.SetQuantity(ctx, "s1", decimal.NewFromInt(10), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrConflict)

	item, err := repos.Stocks.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	store := New()
	repos := store.Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Stocks.Create(ctx, &entity.StockItem{ID: "s1", Quantity: decimal.NewFromInt(10)}))

	boom := errors.New("boom")
	err := repos.Tx.Run(ctx, func(ctx context.Context, tx repository.TxRepos) error {
		require.NoError(t, tx.Stocks.SetQuantity(ctx, "s1", decimal.NewFromInt(10), decimal.NewFromInt(0)))
		require.NoError(t, tx.Movements.Create(ctx, &entity.StockMovement{ID: "m1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	item, _ := repos.Stocks.GetByID(ctx, "s1")
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 0, store.Count("Stok_Hareketleri"))
}

func TestGetByID_DevuelveCopia(t *testing.T) {
	repos := New().Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "d1", Name: "Merkez", Active: true}))

	w, _ := repos.Warehouses.GetByID(ctx, "d1")
	w.Name = "cambiado"

	again, _ := repos.Warehouses.GetByID(ctx, "d1")
	assert.Equal(t, "Merkez", again.Name)
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	repos := New().Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "u1", Email: "Ali@Firma.com"}))

	assert.ErrorIs(t, repos.Users.Create(ctx, &entity.User{ID: "u2", Email: "ali@firma.com"}), domain.ErrEmailAlreadyExists)
	u, err := repos.Users.GetByEmail(ctx, "ALI@firma.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestWarehouseRepo_SoloActivas(t *testing.T) {
	repos := New().Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "d1", CompanyID: "f1", Name: "A", Active: true}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "d2", CompanyID: "f1", Name: "B"}))

	all, _ := repos.Warehouses.ListByCompany(ctx, "f1", false)
	active, _ := repos.Warehouses.ListByCompany(ctx, "f1", true)
	assert.Len(t, all, 2)
	assert.Len(t, active, 1)
}
