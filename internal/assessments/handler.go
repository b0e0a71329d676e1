package assessments

import (
	"net/http"

	"mediconnect_backend/platform/httpkit"
	"mediconnect_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// SaveAssessmentRequest is the request body for POST /health-assessments
type SaveAssessmentRequest struct {
	Score   int    `json:"score" validate:"min=0,max=100"`
	Result  string `json:"result" validate:"required,max=200"`
	Details string `json:"details,omitempty" validate:"max=5000"`
}

// SymptomAnalysisRequest is the request body for symptom analysis
type SymptomAnalysisRequest struct {
	Symptoms string `json:"symptoms" validate:"required,max=5000"`
}

// SymptomAnalysisResponse pairs the analysis with the fixed disclaimer.
type SymptomAnalysisResponse struct {
	Analysis   string `json:"analysis"`
	Disclaimer string `json:"disclaimer"`
}

// Handler handles HTTP requests for health assessments
type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the health assessment routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Save)
	rg.GET("/recent", h.Recent)
	rg.POST("/symptom-analysis", h.SymptomAnalysis)
}

// Save handles POST /api/v1/health-assessments
func (h *Handler) Save(c *gin.Context) {
	var req SaveAssessmentRequest
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

	result, err := h.svc.Save(c.Request.Context(), SaveParams{
		UserID:  identity.UserID(),
		Score:   req.Score,
		Result:  req.Result,
		Details: req.Details,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Recent handles GET /api/v1/health-assessments/recent. Responds null when
// the user has no assessments yet.
func (h *Handler) Recent(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Recent(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SymptomAnalysis handles POST /api/v1/health-assessments/symptom-analysis
func (h *Handler) SymptomAnalysis(c *gin.Context) {
	var req SymptomAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	analysis, err := h.svc.SymptomAnalysis(req.Symptoms)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, SymptomAnalysisResponse{
		Analysis:   analysis,
		Disclaimer: Disclaimer,
	})
}
