package users

import (
	apphttp "mediconnect_backend/internal/http"
	"mediconnect_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the user directory module
type Module struct {
	handler *Handler
	Service *Service
}

// NewModule creates a new users module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	svc := NewService(NewRepository(pool))

	return &Module{
		handler: NewHandler(svc, val),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "users"
}

// RegisterRoutes registers the module's routes under /api/v1/users
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	users := ctx.Protected.Group("/users")
	m.handler.RegisterRoutes(users)
}

var _ apphttp.Module = (*Module)(nil)
