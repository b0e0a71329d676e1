package records

import (
	"mediconnect_backend/internal/adapters/storage"
	"mediconnect_backend/internal/events"
	apphttp "mediconnect_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the medical records domain module
type Module struct {
	handler *Handler
	Service *Service
}

// NewModule creates a new records module with all dependencies wired.
// storageSvc may be nil when MinIO is not configured; uploads then fail with
// a clear error while the rest of the API keeps working.
func NewModule(pool *pgxpool.Pool, storageSvc storage.StorageService, bucket string, eventBus events.Bus) *Module {
	svc := NewService(NewRepository(pool), storageSvc, bucket, eventBus)

	return &Module{
		handler: NewHandler(svc),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "records"
}

// RegisterRoutes registers the module's routes under /api/v1/records
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	records := ctx.Protected.Group("/records")
	m.handler.RegisterRoutes(records)
}

var _ apphttp.Module = (*Module)(nil)
