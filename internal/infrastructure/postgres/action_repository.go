package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

var _ repository.ActionRepository = (*ActionRepo)(nil)

// ActionRepo implementación append-only sobre la tabla eylemler.
type ActionRepo struct {
	q Querier
}

// NewActionRepository construye el adaptador.
func NewActionRepository(q Querier) *ActionRepo {
	return &ActionRepo{q: q}
}

// Create inserta una acción. Un ID repetido devuelve domain.ErrDuplicate (reintentos de la cola).
func (r *ActionRepo) Create(ctx context.Context, a *entity.Action) error {
	query := `
		INSERT INTO eylemler (id, firma_id, kullanici_id, kullanici_adi, islem_turu, eylem_aciklamasi, ilgili_belge_id, eylem_tarihi)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.UserID, a.UserName, a.Type, a.Description, nullable(a.RelatedDocumentID), a.Timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert acción: %w", err)
	}
	return nil
}

// ListByCompany lista acciones de la firma, más recientes primero.
func (r *ActionRepo) ListByCompany(ctx context.Context, companyID, userID string) ([]*entity.Action, error) {
	query := `
		SELECT id, firma_id, kullanici_id, kullanici_adi, islem_turu, eylem_aciklamasi, ilgili_belge_id, eylem_tarihi
		FROM eylemler WHERE firma_id = $1`
	args := []any{companyID}
	if userID != "" {
		query += ` AND kullanici_id = $2`
		args = append(args, userID)
	}
	query += ` ORDER BY eylem_tarihi DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list acciones: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Action, 0)
	for rows.Next() {
		var a entity.Action
		var related *string
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.UserID, &a.UserName, &a.Type, &a.Description, &related, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan acción: %w", err)
		}
		a.RelatedDocumentID = deref(related)
		list = append(list, &a)
	}
	return list, rows.Err()
}
