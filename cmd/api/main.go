package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/application/auth"
	"github.com/jhoicas/Trackit-api/internal/application/inventory"
	"github.com/jhoicas/Trackit-api/internal/application/usecase"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/memory"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/mongo"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/Trackit-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/Trackit-api/internal/interfaces/http"
	"github.com/jhoicas/Trackit-api/pkg/config"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET es obligatorio")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("audit", cfg.Audit.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	// Auditoría: inline escribe en la misma petición; queue encola en Redis para el worker.
	var publisher audit.Publisher
	switch cfg.Audit.Mode {
	case config.AuditQueue:
		qp := queue.NewPublisher(queue.RedisOpt(cfg.Redis))
		defer qp.Close()
		publisher = qp
	default:
		publisher = audit.NewInlinePublisher(audit.NewWriter(store.Actions))
	}
	metrics := observability.NewMetrics()
	publisher = metrics.InstrumentPublisher(publisher)

	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	ledger := inventory.NewLedgerUseCase(store, publisher, log)
	movementQuery := inventory.NewMovementQueryUseCase(store)
	movementReport := inventory.NewMovementReportUseCase(movementQuery, store.Companies, infrapdf.NewMarotoPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Trackit API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(store.Users),
		CompanyUC:      usecase.NewCompanyUseCase(store.Companies, store.Users, authUC, publisher, log),
		WarehouseUC:    usecase.NewWarehouseUseCase(store.Warehouses),
		CustomerUC:     usecase.NewCustomerUseCase(store.Customers),
		SupplierUC:     usecase.NewSupplierUseCase(store.Suppliers),
		OrderUC:        usecase.NewOrderUseCase(store, publisher, log),
		ActionUC:       usecase.NewActionUseCase(store.Actions),
		Ledger:         ledger,
		MovementQuery:  movementQuery,
		MovementReport: movementReport,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore elige el almacén según STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Store, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		return postgres.Open(ctx, cfg.DB, log)
	case config.StoreMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return memory.New().Repositories(), nil
	default:
		return mongo.Open(ctx, cfg.Mongo)
	}
}
