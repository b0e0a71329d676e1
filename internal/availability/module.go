package availability

import (
	apphttp "mediconnect_backend/internal/http"
	"mediconnect_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the availability domain module
type Module struct {
	handler *Handler
	Service *Service
}

// NewModule creates a new availability module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	svc := NewService(NewRepository(pool))

	return &Module{
		handler: NewHandler(svc, val),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "availability"
}

// RegisterRoutes registers the module's routes under /api/v1/availability
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	slots := ctx.Protected.Group("/availability")
	m.handler.RegisterRoutes(slots)
}

var _ apphttp.Module = (*Module)(nil)
