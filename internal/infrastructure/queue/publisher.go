package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
)

// Publisher encola eventos de auditoría (AUDIT_MODE=queue).
type Publisher struct {
	client *asynq.Client
}

var _ audit.Publisher = (*Publisher)(nil)

// NewPublisher construye el publicador sobre un cliente asynq.
func NewPublisher(redisOpt asynq.RedisConnOpt) *Publisher {
	return &Publisher{client: asynq.NewClient(redisOpt)}
}

// Publish encola cada evento; un evento ya encolado cuenta como publicado.
func (p *Publisher) Publish(ctx context.Context, events ...audit.Event) error {
	for _, e := range events {
		task, err := NewAuditTask(e)
		if err != nil {
			return err
		}
		if _, err := p.client.EnqueueContext(ctx, task); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			return fmt.Errorf("encolar evento %s: %w", e.EventID, err)
		}
	}
	return nil
}

// Close libera la conexión a Redis.
func (p *Publisher) Close() error {
	return p.client.Close()
}
