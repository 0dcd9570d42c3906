package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trackit-api/internal/application/auth"
	"github.com/jhoicas/Trackit-api/internal/application/inventory"
	"github.com/jhoicas/Trackit-api/internal/application/usecase"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CompanyUC      *usecase.CompanyUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	CustomerUC     *usecase.CustomerUseCase
	SupplierUC     *usecase.SupplierUseCase
	OrderUC        *usecase.OrderUseCase
	ActionUC       *usecase.ActionUseCase
	Ledger         *inventory.LedgerUseCase
	MovementQuery  *inventory.MovementQueryUseCase
	MovementReport *inventory.MovementReportUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)
	member := []fiber.Handler{authMW, RequireCompany()}
	admin := RequireRole(entity.RoleAdmin)

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Firma e invitaciones: crear y unirse no exigen firma previa
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.UserUC)
	companies := api.Group("/companies", authMW)
	companies.Post("/", companyHandler.Create)
	companies.Get("/me", RequireCompany(), companyHandler.GetMine)
	companies.Put("/me", RequireCompany(), admin, companyHandler.UpdateMine)
	companies.Get("/me/members", RequireCompany(), companyHandler.Members)
	companies.Post("/invite/rotate", RequireCompany(), admin, companyHandler.RotateCode)

	invites := api.Group("/invites", authMW)
	invites.Post("/verify", companyHandler.Verify)
	invites.Post("/join", companyHandler.Join)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := api.Group("/warehouses", member...)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	customerHandler := NewPartyHandler(deps.CustomerUC)
	customers := api.Group("/customers", member...)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	supplierHandler := NewPartyHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers", member...)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)

	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.MovementQuery, deps.MovementReport)
	stocks := api.Group("/stocks", member...)
	stocks.Post("/", inventoryHandler.CreateStockItem)
	stocks.Get("/", inventoryHandler.ListStock)
	stocks.Get("/:id", inventoryHandler.GetStockItem)

	invGroup := api.Group("/inventory", member...)
	invGroup.Post("/entries", inventoryHandler.RecordEntry)
	invGroup.Post("/exits", inventoryHandler.RecordExit)
	invGroup.Post("/transfers", inventoryHandler.RecordTransfer)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/report", inventoryHandler.MovementReport)
	invGroup.Delete("/movements/:id", admin, inventoryHandler.DeleteMovement)

	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders", member...)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id/history", orderHandler.History)

	actionHandler := NewActionHandler(deps.ActionUC)
	actions := api.Group("/actions", member...)
	actions.Get("/", actionHandler.List)
}
