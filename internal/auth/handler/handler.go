// Package handler exposes the auth endpoints.
package handler

import (
	"net/http"

	"guesthouse_backend/internal/auth/service"
	"guesthouse_backend/internal/auth/transport"
	"guesthouse_backend/platform/httpkit"
	"guesthouse_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the public auth endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sign-up", h.SignUp)
	rg.POST("/sign-in", h.SignIn)
	rg.POST("/refresh", h.Refresh)
	rg.POST("/sign-out", h.SignOut)
}

// SignUp handles POST /api/v1/auth/sign-up.
func (h *Handler) SignUp(c *gin.Context) {
	var req transport.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SignUp(c.Request.Context(), req.Name, req.Email, req.Password); httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"message": "account created"})
}

// SignIn handles POST /api/v1/auth/sign-in.
func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	pair, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, pair)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *Handler) Refresh(c *gin.Context) {
	var req transport.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, pair)
}

// SignOut handles POST /api/v1/auth/sign-out.
func (h *Handler) SignOut(c *gin.Context) {
	var req transport.SignOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SignOut(c.Request.Context(), req.RefreshToken); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "signed out"})
}

// GetMe handles GET /api/v1/auth/me.
func (h *Handler) GetMe(c *gin.Context) {
	ownerID, ok := httpkit.MustGetOwnerID(c)
	if !ok {
		return
	}

	profile, err := h.svc.GetMe(c.Request.Context(), ownerID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}
