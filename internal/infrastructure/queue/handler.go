package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

const (
	dedupPrefix = "audit:done:"
	dedupTTL    = 7 * 24 * time.Hour
)

// AuditHandler procesa tareas audit:record escribiendo la acción en el almacén.
// Las tareas ya procesadas se marcan en Redis para no repetir la escritura.
type AuditHandler struct {
	writer *audit.Writer
	redis  *redis.Client
	log    *logger.Logger
}

// NewAuditHandler construye el handler. redis puede ser nil (sin deduplicación).
func NewAuditHandler(writer *audit.Writer, rdb *redis.Client, log *logger.Logger) *AuditHandler {
	return &AuditHandler{writer: writer, redis: rdb, log: log.Component("audit-worker")}
}

// ProcessTask implementa asynq.Handler. Un payload inválido no se reintenta.
func (h *AuditHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var e audit.Event
	if err := json.Unmarshal(t.Payload(), &e); err != nil {
		h.log.Error().Err(err).Msg("payload de auditoría ilegible")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err := e.Validate(); err != nil {
		h.log.Error().Err(err).Str("event_id", e.EventID).Msg("evento de auditoría inválido")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	done, err := h.processed(ctx, e.EventID)
	if err != nil {
		h.log.Warn().Err(err).Str("event_id", e.EventID).Msg("no se pudo consultar la deduplicación")
	}
	if done {
		h.log.Debug().Str("event_id", e.EventID).Msg("evento ya procesado")
		return nil
	}

	if err := h.writer.Write(ctx, e); err != nil {
		return err
	}
	if err := h.markProcessed(ctx, e.EventID); err != nil {
		h.log.Warn().Err(err).Str("event_id", e.EventID).Msg("no se pudo marcar el evento como procesado")
	}
	h.log.Info().Str("event_id", e.EventID).Str("type", e.Type).Str("company_id", e.CompanyID).Msg("acción registrada")
	return nil
}

func (h *AuditHandler) processed(ctx context.Context, eventID string) (bool, error) {
	if h.redis == nil {
		return false, nil
	}
	n, err := h.redis.Exists(ctx, dedupPrefix+eventID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (h *AuditHandler) markProcessed(ctx context.Context, eventID string) error {
	if h.redis == nil {
		return nil
	}
	return h.redis.SetNX(ctx, dedupPrefix+eventID, 1, dedupTTL).Err()
}
