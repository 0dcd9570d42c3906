package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/invite"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

// inviteCodeAttempts intentos de generar un código que no use otra firma.
const inviteCodeAttempts = 5

// TokenIssuer emite un token de sesión con la identidad vigente del usuario.
type TokenIssuer interface {
	IssueToken(u *entity.User) (string, error)
}

// CompanyUseCase alta de firmas y flujo de códigos de invitación.
type CompanyUseCase struct {
	repo   repository.CompanyRepository
	users  repository.UserRepository
	tokens TokenIssuer
	audit  audit.Publisher
	log    *logger.Logger
	rnd    invite.RandSource
	now    func() time.Time
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, users repository.UserRepository, tokens TokenIssuer, publisher audit.Publisher, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{
		repo:   repo,
		users:  users,
		tokens: tokens,
		audit:  publisher,
		log:    log.Component("company"),
		rnd:    invite.DefaultRand,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create crea una firma con código de invitación y deja al creador como admin.
func (uc *CompanyUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateCompanyRequest) (*dto.MembershipResponse, error) {
	if actor.HasCompany() {
		return nil, fmt.Errorf("%w: el usuario ya pertenece a una firma", domain.ErrConflict)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.unaffiliatedUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	code, err := uc.freshCode(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	company.InviteCode = code
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	if err := uc.users.UpdateMembership(ctx, user.ID, company.ID, entity.RoleAdmin, entity.JobTitleAdmin); err != nil {
		return nil, fmt.Errorf("asignar admin: %w", err)
	}
	user.CompanyID, user.Role, user.JobTitle = company.ID, entity.RoleAdmin, entity.JobTitleAdmin

	member := memberActor(actor, user)
	audit.Emit(ctx, uc.audit, uc.log, audit.NewEvent(member, entity.ActionCompanyCreated,
		fmt.Sprintf("Firma %s creada por %s", company.Name, member.UserName), company.ID, now))
	return uc.membership(company, user)
}

// GetMine devuelve la firma del actor (con su código vigente).
func (uc *CompanyUseCase) GetMine(ctx context.Context, actor entity.Actor) (*dto.CompanyResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	company, err := uc.repo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// UpdateMine actualiza el perfil de la firma del actor (solo admin). El código no se toca aquí.
func (uc *CompanyUseCase) UpdateMine(ctx context.Context, actor entity.Actor, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.TaxID != nil {
		company.TaxID = *in.TaxID
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	company.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// RotateInviteCode genera y guarda un código nuevo (solo admin).
func (uc *CompanyUseCase) RotateInviteCode(ctx context.Context, actor entity.Actor) (*dto.InviteCodeResponse, error) {
	if !actor.HasCompany() {
		return nil, domain.ErrNoCompany
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	code, err := uc.rotate(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	audit.Emit(ctx, uc.audit, uc.log, audit.NewEvent(actor, entity.ActionInviteRotated,
		"Código de invitación renovado", actor.CompanyID, uc.now()))
	return &dto.InviteCodeResponse{InviteCode: code}, nil
}

// VerifyInviteCode busca la firma con ese código exacto.
// Ante una colisión gana la firma más antigua.
func (uc *CompanyUseCase) VerifyInviteCode(ctx context.Context, code string) (*dto.CompanySummary, error) {
	company, err := uc.byCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &dto.CompanySummary{ID: company.ID, Name: company.Name}, nil
}

// Join une al actor a la firma del código con el rol solicitado, renueva el código
// de la firma y devuelve un token con la nueva identidad.
func (uc *CompanyUseCase) Join(ctx context.Context, actor entity.Actor, in dto.JoinCompanyRequest) (*dto.MembershipResponse, error) {
	if actor.HasCompany() {
		return nil, fmt.Errorf("%w: el usuario ya pertenece a una firma", domain.ErrConflict)
	}
	user, err := uc.unaffiliatedUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	company, err := uc.byCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}

	role, jobTitle := entity.JoinRole(in.Role)
	if err := uc.users.UpdateMembership(ctx, user.ID, company.ID, role, jobTitle); err != nil {
		return nil, fmt.Errorf("unir a la firma: %w", err)
	}
	user.CompanyID, user.Role, user.JobTitle = company.ID, role, jobTitle

	// El código usado deja de ser válido.
	if _, err := uc.rotate(ctx, company.ID); err != nil {
		uc.log.Error().Err(err).Str("company_id", company.ID).Msg("no se pudo renovar el código de invitación")
	}

	member := memberActor(actor, user)
	audit.Emit(ctx, uc.audit, uc.log, audit.NewEvent(member, entity.ActionCompanyJoined,
		fmt.Sprintf("%s se unió a %s como %s", member.UserName, company.Name, jobTitle), company.ID, uc.now()))
	return uc.membership(company, user)
}

func (uc *CompanyUseCase) byCode(ctx context.Context, code string) (*entity.Company, error) {
	code = strings.TrimSpace(code)
	if !invite.IsWellFormed(code) {
		return nil, domain.ErrInvalidInviteCode
	}
	matches, err := uc.repo.FindByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, domain.ErrInvalidInviteCode
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].CreatedAt.Before(matches[j].CreatedAt) })
	return matches[0], nil
}

func (uc *CompanyUseCase) rotate(ctx context.Context, companyID string) (string, error) {
	code, err := uc.freshCode(ctx, companyID)
	if err != nil {
		return "", err
	}
	if err := uc.repo.UpdateInviteCode(ctx, companyID, code); err != nil {
		return "", err
	}
	return code, nil
}

// freshCode genera códigos hasta dar con uno que ninguna otra firma use;
// agotados los intentos se queda con el último candidato.
func (uc *CompanyUseCase) freshCode(ctx context.Context, companyID string) (string, error) {
	var code string
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code = invite.GenerateCode(companyID, uc.now(), uc.rnd)
		matches, err := uc.repo.FindByInviteCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !usedByOther(matches, companyID) {
			return code, nil
		}
	}
	uc.log.Warn().Str("company_id", companyID).Str("code", code).Msg("código de invitación repetido tras agotar los intentos")
	return code, nil
}

func usedByOther(matches []*entity.Company, companyID string) bool {
	for _, c := range matches {
		if c.ID != companyID {
			return true
		}
	}
	return false
}

func (uc *CompanyUseCase) currentUser(ctx context.Context, actor entity.Actor) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// unaffiliatedUser carga el usuario y exige que aún no tenga firma. El token puede ser
// anterior al alta o a la unión, por eso se mira el dato guardado.
func (uc *CompanyUseCase) unaffiliatedUser(ctx context.Context, actor entity.Actor) (*entity.User, error) {
	user, err := uc.currentUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	if user.CompanyID != "" {
		return nil, fmt.Errorf("%w: el usuario ya pertenece a una firma", domain.ErrConflict)
	}
	return user, nil
}

func (uc *CompanyUseCase) membership(company *entity.Company, user *entity.User) (*dto.MembershipResponse, error) {
	token, err := uc.tokens.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.MembershipResponse{
		Company:  dto.CompanySummary{ID: company.ID, Name: company.Name},
		Role:     user.Role,
		JobTitle: user.JobTitle,
		Token:    token,
	}, nil
}

func memberActor(actor entity.Actor, u *entity.User) entity.Actor {
	actor.CompanyID, actor.Role = u.CompanyID, u.Role
	if actor.UserName == "" {
		actor.UserName = u.FullName()
	}
	return actor
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:         c.ID,
		Name:       c.Name,
		TaxID:      c.TaxID,
		Address:    c.Address,
		Phone:      c.Phone,
		Email:      c.Email,
		InviteCode: c.InviteCode,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
