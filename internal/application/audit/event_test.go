package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/memory"
)

var actor = entity.Actor{UserID: "u1", UserName: "Ayşe Yılmaz", CompanyID: "f1", Role: entity.RoleAdmin}

func TestNewEvent_CopiaActor(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("TR", 3*3600))
	e := NewEvent(actor, entity.ActionStockEntry, "Entrada", "m1", at)

	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, "f1", e.CompanyID)
	assert.Equal(t, "Ayşe Yılmaz", e.UserName)
	assert.Equal(t, time.UTC, e.OccurredAt.Location())
	assert.Equal(t, e.EventID, e.Action().ID)
	assert.Equal(t, "m1", e.Action().RelatedDocumentID)
}

func TestEvent_Validate(t *testing.T) {
	assert.NoError(t, NewEvent(actor, entity.ActionTransfer, "", "", time.Now()).Validate())
	assert.ErrorIs(t, Event{Type: "x"}.Validate(), domain.ErrInvalidInput)
}

func TestInlinePublisher_EscribeYEsIdempotente(t *testing.T) {
	store := memory.New()
	repos := store.Repositories()
	pub := NewInlinePublisher(NewWriter(repos.Actions))
	ctx := context.Background()

	e1 := NewEvent(actor, entity.ActionStockExit, "Salida", "m1", time.Now())
	e2 := NewEvent(actor, entity.ActionOrderCompleted, "Pedido", "o1", time.Now())
	require.NoError(t, pub.Publish(ctx, e1, e2))
	// reentrega del mismo evento
	require.NoError(t, pub.Publish(ctx, e1))

	list, err := repos.Actions.ListByCompany(ctx, "f1", "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestInlinePublisher_EventoInvalido(t *testing.T) {
	pub := NewInlinePublisher(NewWriter(memory.New().Repositories().Actions))
	err := pub.Publish(context.Background(), Event{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
