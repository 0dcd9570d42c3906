package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/memory"
	"github.com/jhoicas/Trackit-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func newAuth(t *testing.T) (*AuthUseCase, *memory.Store) {
	t.Helper()
	mem := memory.New()
	uc := NewAuthUseCase(mem.Repositories().Users, JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "trackit"})
	uc.cost = bcrypt.MinCost
	return uc, mem
}

func TestRegisterUser_SinFirmaYEmailNormalizado(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	res, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "  Ayse@Depo.com ", Password: "clave-segura", Name: "Ayşe", Surname: "Yılmaz"})
	require.NoError(t, err)
	assert.Equal(t, "ayse@depo.com", res.Email)
	assert.Empty(t, res.CompanyID)
	assert.Empty(t, res.Role)
	assert.Equal(t, entity.UserActive, res.Status)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "AYSE@depo.com", Password: "otra-clave", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConIdentidad(t *testing.T) {
	uc, mem := newAuth(t)
	ctx := context.Background()

	res, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ali@depo.com", Password: "clave-segura", Name: "Ali", Surname: "Kaya"})
	require.NoError(t, err)
	require.NoError(t, mem.Repositories().Users.UpdateMembership(ctx, res.ID, "f1", entity.RoleWarehouseManager, "Depo Yöneticisi"))

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ali@depo.com", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "Depo Yöneticisi", out.User.JobTitle)

	id, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, res.ID, id.UserID)
	assert.Equal(t, "Ali Kaya", id.UserName)
	assert.Equal(t, "f1", id.CompanyID)
	assert.Equal(t, entity.RoleWarehouseManager, id.Role)
}

func TestLogin_Errores(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ali@depo.com", Password: "clave-segura", Name: "Ali"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ali@depo.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@depo.com", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
