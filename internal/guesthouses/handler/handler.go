// Package handler exposes the guesthouse CRUD endpoints.
package handler

import (
	"net/http"

	"guesthouse_backend/internal/guesthouses/service"
	"guesthouse_backend/internal/guesthouses/transport"
	"guesthouse_backend/platform/httpkit"
	"guesthouse_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid guesthouse id"
)

// Handler handles HTTP requests for guesthouses.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new guesthouse handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create handles POST /api/v1/guesthouses.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateGuesthouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	ownerID, ok := httpkit.MustGetOwnerID(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), ownerID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// List handles GET /api/v1/guesthouses.
func (h *Handler) List(c *gin.Context) {
	ownerID, ok := httpkit.MustGetOwnerID(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), ownerID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get handles GET /api/v1/guesthouses/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	ownerID, ok := httpkit.MustGetOwnerID(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), ownerID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update handles PUT /api/v1/guesthouses/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var req transport.UpdateGuesthouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	ownerID, ok := httpkit.MustGetOwnerID(c)
	if !ok {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), ownerID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete handles DELETE /api/v1/guesthouses/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	ownerID, ok := httpkit.MustGetOwnerID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), ownerID, id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
