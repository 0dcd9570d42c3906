package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/application/usecase"
)

// CompanyHandler maneja firmas, miembros y códigos de invitación.
type CompanyHandler struct {
	uc    *usecase.CompanyUseCase
	users *usecase.UserUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, users *usecase.UserUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, users: users}
}

// Create godoc
// @Summary      Crear firma (el creador queda como admin)
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la firma"
// @Success      201   {object}  dto.MembershipResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetMine godoc
// @Summary      Firma del usuario autenticado
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Router       /api/companies/me [get]
func (h *CompanyHandler) GetMine(c *fiber.Ctx) error {
	out, err := h.uc.GetMine(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateMine godoc
// @Summary      Actualizar la firma (admin)
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.CompanyResponse
// @Router       /api/companies/me [put]
func (h *CompanyHandler) UpdateMine(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateMine(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Members godoc
// @Summary      Usuarios de la firma
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Router       /api/companies/me/members [get]
func (h *CompanyHandler) Members(c *fiber.Ctx) error {
	out, err := h.users.ListMembers(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// RotateCode godoc
// @Summary      Renovar el código de invitación (admin)
// @Tags         invites
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InviteCodeResponse
// @Router       /api/companies/invite/rotate [post]
func (h *CompanyHandler) RotateCode(c *fiber.Ctx) error {
	out, err := h.uc.RotateInviteCode(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar un código de invitación
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyInviteRequest  true  "Código de 8 dígitos"
// @Success      200   {object}  dto.CompanySummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invites/verify [post]
func (h *CompanyHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyInviteRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.VerifyInviteCode(c.UserContext(), in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Join godoc
// @Summary      Unirse a una firma con código y rol
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.JoinCompanyRequest  true  "Código y rol"
// @Success      200   {object}  dto.MembershipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invites/join [post]
func (h *CompanyHandler) Join(c *fiber.Ctx) error {
	var in dto.JoinCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Join(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
