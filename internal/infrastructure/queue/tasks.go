// Package queue publica eventos de auditoría en Redis (asynq) y los consume desde cmd/worker.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/pkg/config"
)

const (
	// QueueAudit cola dedicada a las escrituras de Eylemler.
	QueueAudit = "audit"
	// TaskAuditRecord tipo de tarea: payload JSON = audit.Event.
	TaskAuditRecord = "audit:record"
	// MaxRetry reintentos de una escritura de auditoría antes de archivarla.
	MaxRetry = 10
)

// NewAuditTask serializa el evento. El ID de tarea es el del evento,
// así un reenvío del mismo evento no se encola dos veces.
func NewAuditTask(e audit.Event) (*asynq.Task, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("serializar evento %s: %w", e.EventID, err)
	}
	return asynq.NewTask(TaskAuditRecord, data,
		asynq.Queue(QueueAudit),
		asynq.MaxRetry(MaxRetry),
		asynq.TaskID(e.EventID),
	), nil
}

// RedisOpt opciones de conexión de asynq a partir de la configuración.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}
