package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// partyUseCase contrato común de clientes y proveedores.
type partyUseCase interface {
	Create(ctx context.Context, actor entity.Actor, in dto.PartyRequest) (*dto.PartyResponse, error)
	List(ctx context.Context, actor entity.Actor) ([]dto.PartyResponse, error)
}

// PartyHandler maneja clientes o proveedores según el caso de uso inyectado.
type PartyHandler struct {
	uc partyUseCase
}

// NewPartyHandler construye el handler.
func NewPartyHandler(uc partyUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente o proveedor
// @Tags         customers, suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartyRequest  true  "Datos de la contraparte"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
// @Router       /api/suppliers [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes o proveedores
// @Tags         customers, suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.PartyResponse]
// @Router       /api/customers [get]
// @Router       /api/suppliers [get]
func (h *PartyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}
