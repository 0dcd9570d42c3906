package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/memory"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

func sampleEvent() audit.Event {
	actor := entity.Actor{UserID: "u1", UserName: "Mehmet", CompanyID: "f1", Role: entity.RoleWarehouseClerk}
	return audit.NewEvent(actor, entity.ActionStockExit, "Salida de 30 kg", "m1", time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC))
}

func TestNewAuditTask(t *testing.T) {
	e := sampleEvent()
	task, err := NewAuditTask(e)
	require.NoError(t, err)
	assert.Equal(t, TaskAuditRecord, task.Type())

	var got map[string]any
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	for _, key := range []string{"event_id", "company_id", "user_id", "user_name", "type", "description", "related_id", "occurred_at"} {
		assert.Contains(t, got, key)
	}
}

func newHandler(t *testing.T) (*AuditHandler, *memory.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mem := memory.New()
	return NewAuditHandler(audit.NewWriter(mem.Repositories().Actions), rdb, logger.Nop()), mem, mr
}

func TestAuditHandler_EscribeUnaVez(t *testing.T) {
	h, mem, mr := newHandler(t)
	ctx := context.Background()
	e := sampleEvent()
	task, err := NewAuditTask(e)
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(ctx, task))
	require.NoError(t, h.ProcessTask(ctx, task))

	actions, err := mem.Repositories().Actions.ListByCompany(ctx, "f1", "")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, e.EventID, actions[0].ID)
	assert.Equal(t, "m1", actions[0].RelatedDocumentID)
	assert.Equal(t, 1, mem.Writes("Eylemler"), "el segundo intento no llega al almacén")
	assert.True(t, mr.Exists(dedupPrefix+e.EventID))
}

func TestAuditHandler_SinRedisSigueSiendoIdempotente(t *testing.T) {
	mem := memory.New()
	h := NewAuditHandler(audit.NewWriter(mem.Repositories().Actions), nil, logger.Nop())
	ctx := context.Background()
	task, err := NewAuditTask(sampleEvent())
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(ctx, task))
	require.NoError(t, h.ProcessTask(ctx, task))
	assert.Equal(t, 1, mem.Count("Eylemler"))
}

func TestAuditHandler_PayloadInvalidoNoSeReintenta(t *testing.T) {
	h, _, _ := newHandler(t)
	ctx := context.Background()

	err := h.ProcessTask(ctx, asynq.NewTask(TaskAuditRecord, []byte("{no-json")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	incomplete, _ := json.Marshal(audit.Event{EventID: "e1"})
	err = h.ProcessTask(ctx, asynq.NewTask(TaskAuditRecord, incomplete))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestPublisher_EncolaEnLaColaDeAuditoria(t *testing.T) {
	mr := miniredis.RunT(t)
	opt := asynq.RedisClientOpt{Addr: mr.Addr()}
	p := NewPublisher(opt)
	t.Cleanup(func() { _ = p.Close() })

	e := sampleEvent()
	require.NoError(t, p.Publish(context.Background(), e))
	require.NoError(t, p.Publish(context.Background(), e), "reenviar el mismo evento no es un error")

	inspector := asynq.NewInspector(opt)
	t.Cleanup(func() { _ = inspector.Close() })
	pending, err := inspector.ListPendingTasks(QueueAudit)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, e.EventID, pending[0].ID)
	assert.Equal(t, MaxRetry, pending[0].MaxRetry)
}
