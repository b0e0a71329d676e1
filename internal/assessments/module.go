package assessments

import (
	apphttp "mediconnect_backend/internal/http"
	"mediconnect_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the health assessments domain module
type Module struct {
	handler *Handler
	Service *Service
}

// NewModule creates a new assessments module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	svc := NewService(NewRepository(pool))

	return &Module{
		handler: NewHandler(svc, val),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "assessments"
}

// RegisterRoutes registers the module's routes under /api/v1/health-assessments
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	assessments := ctx.Protected.Group("/health-assessments")
	m.handler.RegisterRoutes(assessments)
}

var _ apphttp.Module = (*Module)(nil)
