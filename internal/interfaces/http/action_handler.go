package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/application/usecase"
)

// ActionHandler expone el registro de auditoría.
type ActionHandler struct {
	uc *usecase.ActionUseCase
}

// NewActionHandler construye el handler.
func NewActionHandler(uc *usecase.ActionUseCase) *ActionHandler {
	return &ActionHandler{uc: uc}
}

// List godoc
// @Summary      Listar acciones con filtros y búsqueda
// @Tags         actions
// @Security     Bearer
// @Produce      json
// @Param        type     query  string  false  "Tipo de acción"
// @Param        from     query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to       query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        user_id  query  string  false  "Usuario"
// @Param        q        query  string  false  "Texto a buscar"
// @Success      200  {object}  dto.ListResponse[dto.ActionResponse]
// @Router       /api/actions [get]
func (h *ActionHandler) List(c *fiber.Ctx) error {
	var in dto.ActionQuery
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	from, err := parseDay(in.From)
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseDay(in.To)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), usecase.ActionQuery{
		Type:   in.Type,
		UserID: in.UserID,
		From:   from,
		To:     to,
		Search: in.Q,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}
