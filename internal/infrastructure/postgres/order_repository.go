package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación sobre siparisler y siparis_gecmisi (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO siparisler (id, firma_id, musteri_id, aciklama, durum, olusturma_tarihi, kullanici_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, o.ID, o.CompanyID, o.CustomerID, o.Description, o.Status, o.CreatedAt, o.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, firma_id, musteri_id, aciklama, durum, olusturma_tarihi, kullanici_id
		FROM siparisler WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CompanyID, &o.CustomerID, &o.Description, &o.Status, &o.CreatedAt, &o.CreatedBy,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &o, nil
}

// UpdateStatus escribe solo durum.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE siparisler SET durum = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update durum: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista pedidos de la firma, opcionalmente por cliente y estado.
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID, customerID, status string) ([]*entity.Order, error) {
	query := `
		SELECT id, firma_id, musteri_id, aciklama, durum, olusturma_tarihi, kullanici_id
		FROM siparisler WHERE firma_id = $1`
	args := []any{companyID}
	pos := 2
	if customerID != "" {
		query += fmt.Sprintf(" AND musteri_id = $%d", pos)
		args = append(args, customerID)
		pos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND durum = $%d", pos)
		args = append(args, status)
	}
	query += " ORDER BY olusturma_tarihi DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.CustomerID, &o.Description, &o.Status, &o.CreatedAt, &o.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// AppendHistory agrega una entrada a siparis_gecmisi.
func (r *OrderRepo) AppendHistory(ctx context.Context, h *entity.OrderHistory) error {
	query := `
		INSERT INTO siparis_gecmisi (id, siparis_id, tarih, durum, aciklama)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, h.ID, h.OrderID, h.Timestamp, h.Status, h.Description); err != nil {
		return fmt.Errorf("insert historial: %w", err)
	}
	return nil
}

// ListHistory devuelve el historial de un pedido en orden cronológico.
func (r *OrderRepo) ListHistory(ctx context.Context, orderID string) ([]*entity.OrderHistory, error) {
	query := `
		SELECT id, siparis_id, tarih, durum, aciklama
		FROM siparis_gecmisi WHERE siparis_id = $1 ORDER BY tarih`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list historial: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.OrderHistory, 0)
	for rows.Next() {
		var h entity.OrderHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.Timestamp, &h.Status, &h.Description); err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
