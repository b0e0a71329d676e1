package availability

import (
	"net/http"

	"mediconnect_backend/platform/httpkit"
	"mediconnect_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateSlotRequest is the request body for POST /availability
type CreateSlotRequest struct {
	Date  string `json:"date" validate:"required"`
	Time  string `json:"time" validate:"required"`
	Notes string `json:"notes,omitempty" validate:"max=500"`
}

// Handler handles HTTP requests for availability slots
type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the availability routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", httpkit.RequireRole("doctor"), h.Create)
	rg.DELETE("/:id", httpkit.RequireRole("doctor"), h.Delete)
}

// List handles GET /api/v1/availability?doctorId=. Without doctorId it
// returns the caller's own slots.
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	doctorID := identity.UserID()
	if raw := c.Query("doctorId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid doctorId", nil)
			return
		}
		doctorID = parsed
	}

	result, err := h.svc.List(c.Request.Context(), doctorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create handles POST /api/v1/availability (doctor only)
func (h *Handler) Create(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), CreateParams{
		DoctorID:  identity.UserID(),
		Date:      req.Date,
		TimeOfDay: req.Time,
		Notes:     req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Delete handles DELETE /api/v1/availability/:id (owner only)
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid slot id", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id, identity.UserID())) {
		return
	}
	httpkit.NoContent(c)
}
