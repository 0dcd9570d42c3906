package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

func TestDecimal128_ConservaEscala(t *testing.T) {
	for _, s := range []string{"0", "70", "12.5", "0.0001", "99999999.9999"} {
		d := decimal.RequireFromString(s)
		assert.True(t, fromDecimal128(toDecimal128(d)).Equal(d), s)
	}
}

func TestMovementDoc_NombresDeCampo(t *testing.T) {
	m := &entity.StockMovement{
		ID: "m1", CompanyID: "f1", Kind: entity.MovementExit, Timestamp: time.Now().UTC(),
		Quantity: decimal.NewFromInt(30), ResultingQuantity: decimal.NewFromInt(70),
		StockItemID: "s1", SourceWarehouseID: "d1", CounterpartyID: "c1", UserID: "u1",
	}
	raw, err := bson.Marshal(newMovementDoc(m))
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	for _, key := range []string{"_id", "firma_id", "tarih", "islem_turu", "miktar", "sonuc_miktar", "stok_id", "depo_id", "kaynak_id", "kullanici_id"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "hedef_depo_id", "vacío no se escribe")
	assert.NotContains(t, fields, "siparis_id")

	var back movementDoc
	require.NoError(t, bson.Unmarshal(raw, &back))
	got := back.entity()
	assert.True(t, got.ResultingQuantity.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, "c1", got.CounterpartyID)
}
