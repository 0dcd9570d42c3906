package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

func TestMetrics_MiddlewareRegistraRuta(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/api/stocks/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/stocks/abc", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTeapot, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/stocks/:id", http.MethodGet, "418")))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "trackit_http_request_duration_seconds_bucket")
}

type fakePublisher struct{ err error }

func (f fakePublisher) Publish(context.Context, ...audit.Event) error { return f.err }

func TestMetrics_InstrumentPublisher(t *testing.T) {
	m := NewMetrics()
	actor := entity.Actor{UserID: "u1", UserName: "Ayşe", CompanyID: "c1", Role: entity.RoleAdmin}
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	entry := audit.NewEvent(actor, entity.ActionStockEntry, "entrada", "m1", now)
	exit := audit.NewEvent(actor, entity.ActionStockExit, "salida", "m2", now)

	require.NoError(t, m.InstrumentPublisher(fakePublisher{}).Publish(context.Background(), entry, exit))
	err := m.InstrumentPublisher(fakePublisher{err: errors.New("redis caído")}).Publish(context.Background(), entry)
	assert.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.auditEvents.WithLabelValues(entity.ActionStockEntry, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.auditEvents.WithLabelValues(entity.ActionStockExit, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.auditEvents.WithLabelValues(entity.ActionStockEntry, "error")))
}
