package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/application/inventory"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// InventoryHandler expone el libro de inventario: stock, movimientos e informe.
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
	query  *inventory.MovementQueryUseCase
	report *inventory.MovementReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, query *inventory.MovementQueryUseCase, report *inventory.MovementReportUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, query: query, report: report}
}

// CreateStockItem godoc
// @Summary      Alta de producto en una bodega (cantidad 0)
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "Bodega, producto y unidad"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *InventoryHandler) CreateStockItem(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	item, err := h.ledger.CreateStockItem(c.UserContext(), GetActor(c), inventory.StockItemInput{
		WarehouseID: in.WarehouseID,
		ProductName: in.ProductName,
		Unit:        in.Unit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockItemResponse(item))
}

// ListStock godoc
// @Summary      Listar stock (opcionalmente por bodega)
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "ID de la bodega"
// @Success      200  {object}  dto.ListResponse[dto.StockItemResponse]
// @Router       /api/stocks [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	items, err := h.ledger.ListStock(c.UserContext(), GetActor(c), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toStockItemResponse(it))
	}
	return c.JSON(dto.NewList(out))
}

// GetStockItem godoc
// @Summary      Obtener ítem de stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [get]
func (h *InventoryHandler) GetStockItem(c *fiber.Ctx) error {
	item, err := h.ledger.GetStockItem(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockItemResponse(item))
}

// RecordEntry godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntryRequest  true  "Ítem, cantidad y proveedor"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RecordEntry(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.ledger.RecordEntry(c.UserContext(), GetActor(c), inventory.EntryInput{
		StockItemID: in.StockItemID,
		Quantity:    in.Quantity,
		SupplierID:  in.SupplierID,
		Description: in.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(inventory.MovementView{Movement: mov}))
}

// RecordExit godoc
// @Summary      Registrar salida de stock (cierra el pedido si se indica)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExitRequest  true  "Ítem, cantidad, cliente y pedido"
// @Success      201   {object}  dto.MovementResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/exits [post]
func (h *InventoryHandler) RecordExit(c *fiber.Ctx) error {
	var in dto.ExitRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.ledger.RecordExit(c.UserContext(), GetActor(c), inventory.ExitInput{
		StockItemID: in.StockItemID,
		Quantity:    in.Quantity,
		CustomerID:  in.CustomerID,
		OrderID:     in.OrderID,
		Description: in.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(inventory.MovementView{Movement: mov}))
}

// RecordTransfer godoc
// @Summary      Transferir stock entre bodegas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Ítem, cantidad, origen y destino"
// @Success      201   {object}  dto.MovementResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) RecordTransfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.ledger.RecordTransfer(c.UserContext(), GetActor(c), inventory.TransferInput{
		StockItemID:            in.StockItemID,
		Quantity:               in.Quantity,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		Description:            in.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(inventory.MovementView{Movement: mov}))
}

// ListMovements godoc
// @Summary      Listar movimientos con filtros y búsqueda
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        kind          query  string  false  "entry | exit | transfer"
// @Param        from          query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        warehouse_id  query  string  false  "Bodega origen o destino"
// @Param        q             query  string  false  "Texto a buscar"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	q, err := movementQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	views, err := h.query.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toMovementResponse(v))
	}
	return c.JSON(dto.NewList(out))
}

// MovementReport godoc
// @Summary      Informe PDF de movimientos (mismos filtros que el listado)
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/inventory/movements/report [get]
func (h *InventoryHandler) MovementReport(c *fiber.Ctx) error {
	q, err := movementQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.report.Export(c.UserContext(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="movimientos-%s.pdf"`, GetCompanyID(c)))
	return c.Send(doc)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento (admin, sin revertir cantidades)
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.ledger.DeleteMovement(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func movementQuery(c *fiber.Ctx) (inventory.MovementQuery, error) {
	var in dto.MovementQuery
	if err := parseQuery(c, &in); err != nil {
		return inventory.MovementQuery{}, err
	}
	from, err := parseDay(in.From)
	if err != nil {
		return inventory.MovementQuery{}, err
	}
	to, err := parseDay(in.To)
	if err != nil {
		return inventory.MovementQuery{}, err
	}
	return inventory.MovementQuery{
		Kind:        in.Kind,
		From:        from,
		To:          to,
		WarehouseID: in.WarehouseID,
		Search:      in.Q,
	}, nil
}

func toStockItemResponse(it *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:          it.ID,
		WarehouseID: it.WarehouseID,
		ProductName: it.ProductName,
		Unit:        it.Unit,
		Quantity:    it.Quantity,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toMovementResponse(v inventory.MovementView) dto.MovementResponse {
	m := v.Movement
	return dto.MovementResponse{
		ID:                       m.ID,
		Kind:                     m.Kind,
		Description:              m.Description,
		Quantity:                 m.Quantity,
		ResultingQuantity:        m.ResultingQuantity,
		StockItemID:              m.StockItemID,
		ProductName:              v.ProductName,
		Unit:                     v.Unit,
		SourceWarehouseID:        m.SourceWarehouseID,
		SourceWarehouseName:      v.SourceWarehouseName,
		DestinationWarehouseID:   m.DestinationWarehouseID,
		DestinationWarehouseName: v.DestinationWarehouseName,
		CounterpartyID:           m.CounterpartyID,
		CounterpartyName:         v.CounterpartyName,
		OrderID:                  m.OrderID,
		UserID:                   m.UserID,
		UserName:                 v.UserName,
		Timestamp:                m.Timestamp,
	}
}
