package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/mongo"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/queue"
	"github.com/jhoicas/Trackit-api/pkg/config"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

// Worker de auditoría: consume la cola "audit" y escribe en Eylemler.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store repository.Store
	switch cfg.Store.Driver {
	case config.StorePostgres:
		store, err = postgres.Open(ctx, cfg.DB, log)
	case config.StoreMongo:
		store, err = mongo.Open(ctx, cfg.Mongo)
	default:
		log.Fatal().Str("store", cfg.Store.Driver).Msg("el worker necesita un almacén compartido (mongo o postgres)")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
	}

	handler := queue.NewAuditHandler(audit.NewWriter(store.Actions), rdb, log)
	worker := queue.NewWorker(queue.RedisOpt(cfg.Redis), cfg.Audit.Concurrency, handler, log)

	log.Info().Int("concurrency", cfg.Audit.Concurrency).Msg("worker de auditoría iniciado")
	if err := worker.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("worker de auditoría")
	}
	log.Info().Msg("worker detenido")
}
