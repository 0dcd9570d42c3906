// Package audit desacopla el registro de acciones (Eylemler) de las escrituras de negocio.
// Los casos de uso publican eventos después del commit; un Writer los persiste,
// ya sea en línea (InlinePublisher) o desde la cola (cmd/worker).
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

// Event acción auditable. EventID es además el ID del documento en Eylemler,
// de modo que reprocesar el mismo evento no duplica el registro.
type Event struct {
	EventID     string    `json:"event_id"`
	CompanyID   string    `json:"company_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	RelatedID   string    `json:"related_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewEvent construye un evento del actor con ID nuevo.
func NewEvent(actor entity.Actor, actionType, description, relatedID string, at time.Time) Event {
	return Event{
		EventID:     uuid.New().String(),
		CompanyID:   actor.CompanyID,
		UserID:      actor.UserID,
		UserName:    actor.UserName,
		Type:        actionType,
		Description: description,
		RelatedID:   relatedID,
		OccurredAt:  at.UTC(),
	}
}

// Validate comprueba los campos mínimos de un evento recibido.
func (e Event) Validate() error {
	if e.EventID == "" || e.CompanyID == "" || e.Type == "" {
		return fmt.Errorf("%w: evento de auditoría incompleto", domain.ErrInvalidInput)
	}
	return nil
}

// Action proyecta el evento al documento de Eylemler.
func (e Event) Action() *entity.Action {
	return &entity.Action{
		ID:                e.EventID,
		CompanyID:         e.CompanyID,
		UserID:            e.UserID,
		UserName:          e.UserName,
		Type:              e.Type,
		Description:       e.Description,
		RelatedDocumentID: e.RelatedID,
		Timestamp:         e.OccurredAt,
	}
}

// Publisher entrega eventos de auditoría a su destino.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// Writer persiste eventos en el repositorio de acciones.
type Writer struct {
	actions repository.ActionRepository
}

// NewWriter construye el escritor de acciones.
func NewWriter(actions repository.ActionRepository) *Writer {
	return &Writer{actions: actions}
}

// Write inserta la acción; un evento ya escrito (ErrDuplicate) se considera éxito.
func (w *Writer) Write(ctx context.Context, e Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := w.actions.Create(ctx, e.Action()); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		return fmt.Errorf("escribir acción %s: %w", e.Type, err)
	}
	return nil
}

// InlinePublisher escribe cada evento en el momento (AUDIT_MODE=inline).
type InlinePublisher struct {
	writer *Writer
}

var _ Publisher = (*InlinePublisher)(nil)

// NewInlinePublisher construye el publicador síncrono.
func NewInlinePublisher(writer *Writer) *InlinePublisher {
	return &InlinePublisher{writer: writer}
}

// Publish escribe los eventos en orden y se detiene en el primer error.
func (p *InlinePublisher) Publish(ctx context.Context, events ...Event) error {
	for _, e := range events {
		if err := p.writer.Write(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Emit publica los eventos después del commit. Un fallo se registra y no se propaga:
// la operación de negocio ya está confirmada.
func Emit(ctx context.Context, p Publisher, log *logger.Logger, events ...Event) {
	if err := p.Publish(ctx, events...); err != nil {
		for _, e := range events {
			log.Error().Err(err).
				Str("event_id", e.EventID).
				Str("type", e.Type).
				Str("related_id", e.RelatedID).
				Msg("no se pudo publicar la acción de auditoría")
		}
	}
}
