package dto

import "time"

// ActionQuery filtros de GET /api/actions (fechas YYYY-MM-DD).
type ActionQuery struct {
	Type   string `query:"type" validate:"omitempty,max=50"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	UserID string `query:"user_id"`
	Q      string `query:"q" validate:"omitempty,max=100"`
}

// ActionResponse salida de una acción de auditoría.
type ActionResponse struct {
	ID                string    `json:"id"`
	Type              string    `json:"type"`
	Description       string    `json:"description"`
	UserID            string    `json:"user_id"`
	UserName          string    `json:"user_name"`
	RelatedDocumentID string    `json:"related_document_id,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}
