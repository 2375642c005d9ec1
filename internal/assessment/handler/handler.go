// Package handler exposes the assessment endpoints.
package handler

import (
	"net/http"
	"strconv"

	"guesthouse_backend/internal/assessment/service"
	"guesthouse_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidID = "invalid guesthouse id"

// Handler handles HTTP requests for safety assessments.
type Handler struct {
	svc *service.Service
}

// New creates a new assessment handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Assess handles GET /api/v1/guesthouses/:id/safety-assessment.
func (h *Handler) Assess(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	ownerID, ok := httpkit.MustGetOwnerID(c)
	if !ok {
		return
	}

	result, err := h.svc.Assess(c.Request.Context(), ownerID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// History handles GET /api/v1/guesthouses/:id/assessments.
func (h *Handler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	ownerID, ok := httpkit.MustGetOwnerID(c)
	if !ok {
		return
	}

	// Unparsable limits fall back to the default window.
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.svc.History(c.Request.Context(), ownerID, id, limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
