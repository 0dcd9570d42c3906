// Package observability expone métricas Prometheus del API y del pipeline de auditoría.
package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
)

// Metrics registro propio con las métricas de la aplicación.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	auditEvents     *prometheus.CounterVec
}

// NewMetrics inicializa el registro y las métricas base.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trackit_http_requests_total",
		Help: "Peticiones HTTP por ruta, método y código.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trackit_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP por ruta.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trackit_audit_events_total",
		Help: "Eventos de auditoría publicados por tipo y resultado.",
	}, []string{"type", "result"})
	registry.MustRegister(requests, duration, events)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		auditEvents:     events,
	}
}

// Handler endpoint /metrics para Fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(m.handler)
}

// Middleware mide cada petición con el patrón de ruta de Fiber (no la URL cruda).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := "unknown"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		m.requestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Registerer para métricas adicionales.
func (m *Metrics) Registerer() prometheus.Registerer {
	return m.registry
}

// InstrumentPublisher cuenta los eventos publicados por tipo (stok_girisi, stok_cikisi, ...).
func (m *Metrics) InstrumentPublisher(next audit.Publisher) audit.Publisher {
	return &countingPublisher{next: next, events: m.auditEvents}
}

type countingPublisher struct {
	next   audit.Publisher
	events *prometheus.CounterVec
}

func (p *countingPublisher) Publish(ctx context.Context, events ...audit.Event) error {
	err := p.next.Publish(ctx, events...)
	result := "ok"
	if err != nil {
		result = "error"
	}
	for _, e := range events {
		p.events.WithLabelValues(e.Type, result).Inc()
	}
	return err
}
