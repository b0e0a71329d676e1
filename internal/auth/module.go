// Package auth provides the authentication module: registration, login, and
// token issuance.
package auth

import (
	"mediconnect_backend/internal/auth/handler"
	"mediconnect_backend/internal/auth/repository"
	"mediconnect_backend/internal/auth/service"
	"mediconnect_backend/internal/auth/token"
	"mediconnect_backend/internal/events"
	apphttp "mediconnect_backend/internal/http"
	"mediconnect_backend/platform/config"
	"mediconnect_backend/platform/logger"
	"mediconnect_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the auth domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new auth module with all dependencies wired
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, eventBus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	issuer := token.NewIssuer(cfg.GetJWTSecret(), cfg.GetTokenTTL())
	svc := service.New(repo, issuer, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes registers the auth routes under /api/auth with the stricter
// per-IP rate limit.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.Engine.Group("/api/auth")
	if ctx.AuthRateLimiter != nil {
		authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	}
	m.handler.RegisterRoutes(authGroup)
}

var _ apphttp.Module = (*Module)(nil)
