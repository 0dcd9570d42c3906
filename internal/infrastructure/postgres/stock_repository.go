package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre la tabla stoklar (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, firma_id, depo_id, urun_adi, birim, miktar, olusturma_tarihi, guncelleme_tarihi`

func scanStock(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	if err := row.Scan(&s.ID, &s.CompanyID, &s.WarehouseID, &s.ProductName, &s.Unit, &s.Quantity,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta un ítem de stock; (depo_id, urun_adi, birim) es único.
func (r *StockRepo) Create(ctx context.Context, s *entity.StockItem) error {
	query := `INSERT INTO stoklar (` + stockColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.WarehouseID, s.ProductName, s.Unit, s.Quantity, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stok: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem de stock.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	s, err := scanStock(r.q.QueryRow(ctx, `SELECT `+stockColumns+` FROM stoklar WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stok: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	s, err := scanStock(r.q.QueryRow(ctx, `SELECT `+stockColumns+` FROM stoklar WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stok for update: %w", err)
	}
	return s, nil
}

// SetQuantity actualiza miktar solo si sigue valiendo expected.
func (r *StockRepo) SetQuantity(ctx context.Context, id string, expected, next decimal.Decimal) error {
	query := `
		UPDATE stoklar SET miktar = $3, guncelleme_tarihi = now()
		WHERE id = $1 AND miktar = $2`
	cmd, err := r.q.Exec(ctx, query, id, expected, next)
	if err != nil {
		return fmt.Errorf("update miktar: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// FindInWarehouse busca el ítem de un producto (urun_adi + birim) en una bodega.
func (r *StockRepo) FindInWarehouse(ctx context.Context, warehouseID, productName, unit string) (*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stoklar WHERE depo_id = $1 AND urun_adi = $2 AND birim = $3`
	s, err := scanStock(r.q.QueryRow(ctx, query, warehouseID, productName, unit))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find stok en bodega: %w", err)
	}
	return s, nil
}

// ListByWarehouse lista el stock de una bodega.
func (r *StockRepo) ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockColumns+` FROM stoklar WHERE firma_id = $1 AND depo_id = $2 ORDER BY urun_adi`,
		companyID, warehouseID)
}

// ListByCompany lista el stock de todas las bodegas de la firma.
func (r *StockRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockColumns+` FROM stoklar WHERE firma_id = $1 ORDER BY urun_adi`, companyID)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stok: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockItem, 0)
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stok: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
