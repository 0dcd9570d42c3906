package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre la tabla firmalar.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para firmas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, ad, vergi_no, telefon, eposta, adres, davet_kodu, olusturma_tarihi, guncelleme_tarihi`

// Create persiste una nueva firma.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `INSERT INTO firmalar (` + companyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.TaxID, c.Phone, c.Email, c.Address, c.InviteCode, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert firma: %w", err)
	}
	return nil
}

// GetByID obtiene una firma por ID; nil si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM firmalar WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Phone, &c.Email, &c.Address, &c.InviteCode, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get firma: %w", err)
	}
	return &c, nil
}

// FindByInviteCode devuelve las firmas con ese davet_kodu (puede haber colisiones).
func (r *CompanyRepo) FindByInviteCode(ctx context.Context, code string) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+companyColumns+` FROM firmalar WHERE davet_kodu = $1 ORDER BY olusturma_tarihi`, code)
	if err != nil {
		return nil, fmt.Errorf("find firma by davet_kodu: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Company, 0)
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Phone, &c.Email, &c.Address, &c.InviteCode, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan firma: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateInviteCode escribe solo davet_kodu.
func (r *CompanyRepo) UpdateInviteCode(ctx context.Context, id, code string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE firmalar SET davet_kodu = $2, guncelleme_tarihi = now() WHERE id = $1`, id, code)
	if err != nil {
		return fmt.Errorf("update davet_kodu: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza el perfil de la firma (no toca davet_kodu).
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE firmalar SET ad = $2, vergi_no = $3, telefon = $4, eposta = $5, adres = $6, guncelleme_tarihi = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Name, c.TaxID, c.Phone, c.Email, c.Address, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update firma: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
