package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre la tabla stok_hareketleri (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, firma_id, tarih, islem_turu, aciklama, miktar, sonuc_miktar, stok_id, depo_id,
	hedef_depo_id, kaynak_id, siparis_id, kullanici_id`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var dest, counterparty, order *string
	if err := row.Scan(&m.ID, &m.CompanyID, &m.Timestamp, &m.Kind, &m.Description, &m.Quantity,
		&m.ResultingQuantity, &m.StockItemID, &m.SourceWarehouseID, &dest, &counterparty, &order, &m.UserID); err != nil {
		return nil, err
	}
	m.DestinationWarehouseID = deref(dest)
	m.CounterpartyID = deref(counterparty)
	m.OrderID = deref(order)
	return &m, nil
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stok_hareketleri (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.Timestamp, m.Kind, m.Description, m.Quantity, m.ResultingQuantity,
		m.StockItemID, m.SourceWarehouseID, nullable(m.DestinationWarehouseID),
		nullable(m.CounterpartyID), nullable(m.OrderID), m.UserID,
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stok_hareketleri WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return m, nil
}

// Delete elimina un movimiento.
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stok_hareketleri WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista movimientos de la firma del más reciente al más antiguo.
func (r *StockMovementRepo) ListByCompany(ctx context.Context, companyID, kind string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stok_hareketleri WHERE firma_id = $1`
	args := []any{companyID}
	if kind != "" {
		query += ` AND islem_turu = $2`
		args = append(args, kind)
	}
	query += ` ORDER BY tarih DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
