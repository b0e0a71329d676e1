package users

import (
	"net/http"

	"mediconnect_backend/platform/httpkit"
	"mediconnect_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UpdateProfileRequest is the request body for PATCH /users/:id
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Gender *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	DOB    *string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Handler handles HTTP requests for the user directory
type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the user directory routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.GET("/by-email/:email", h.GetByEmail)
	rg.PATCH("/:id", h.Update)
}

// List handles GET /api/v1/users?role=doctor
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), c.Query("role"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID handles GET /api/v1/users/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByEmail handles GET /api/v1/users/by-email/:email
func (h *Handler) GetByEmail(c *gin.Context) {
	result, err := h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update handles PATCH /api/v1/users/:id. Users may only patch themselves.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if identity.UserID() != id {
		httpkit.Error(c, http.StatusForbidden, "cannot update another user's profile", nil)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.svc.UpdateProfile(c.Request.Context(), id, UpdateParams{
		Name:   req.Name,
		Phone:  req.Phone,
		Gender: req.Gender,
		DOB:    req.DOB,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
