package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Trackit-api/pkg/logger"
)

// Worker servidor asynq que consume la cola de auditoría.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker registra el handler de audit:record sobre un servidor asynq.
func NewWorker(redisOpt asynq.RedisConnOpt, concurrency int, handler *AuditHandler, log *logger.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueAudit: 1},
		Logger:      asynqLogger{log: log.Component("asynq")},
	})
	mux := asynq.NewServeMux()
	mux.Handle(TaskAuditRecord, handler)
	return &Worker{server: srv, mux: mux}
}

// Run procesa tareas hasta que ctx se cancela.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: no configurado")
	}
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	<-ctx.Done()
	w.server.Shutdown()
	return nil
}

// asynqLogger adapta el logger de la aplicación a asynq.Logger.
type asynqLogger struct {
	log *logger.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
