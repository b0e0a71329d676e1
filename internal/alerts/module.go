package alerts

import (
	apphttp "mediconnect_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the alerts domain module
type Module struct {
	handler *Handler
	Service *Service
}

// NewModule creates a new alerts module with all dependencies wired
func NewModule(pool *pgxpool.Pool) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo)

	return &Module{
		handler: NewHandler(svc),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "alerts"
}

// RegisterRoutes registers the module's routes under /api/v1/alerts
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	alerts := ctx.Protected.Group("/alerts")
	m.handler.RegisterRoutes(alerts)
}

var _ apphttp.Module = (*Module)(nil)
