package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre la tabla kullanicilar.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, firma_id, eposta, sifre_hash, ad, soyad, telefon, yetki_id, is_unvani, durum, olusturma_tarihi, guncelleme_tarihi`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var companyID *string
	if err := row.Scan(&u.ID, &companyID, &u.Email, &u.PasswordHash, &u.Name, &u.Surname, &u.Phone,
		&u.Role, &u.JobTitle, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.CompanyID = deref(companyID)
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO kullanicilar (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		u.ID, nullable(u.CompanyID), u.Email, u.PasswordHash, u.Name, u.Surname, u.Phone,
		u.Role, u.JobTitle, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM kullanicilar WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por eposta (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM kullanicilar WHERE lower(eposta) = lower($1) LIMIT 1`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by eposta: %w", err)
	}
	return u, nil
}

// UpdateMembership escribe firma_id, yetki_id e is_unvani; el resto del perfil no cambia.
func (r *UserRepo) UpdateMembership(ctx context.Context, userID, companyID, role, jobTitle string) error {
	query := `
		UPDATE kullanicilar SET firma_id = $2, yetki_id = $3, is_unvani = $4, guncelleme_tarihi = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, userID, nullable(companyID), role, jobTitle)
	if err != nil {
		return fmt.Errorf("update membresía: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListByCompany lista los usuarios de una firma.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM kullanicilar WHERE firma_id = $1 ORDER BY ad`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
