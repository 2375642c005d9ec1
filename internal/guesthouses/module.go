// Package guesthouses provides the guesthouse bounded context module.
package guesthouses

import (
	"guesthouse_backend/internal/guesthouses/handler"
	"guesthouse_backend/internal/guesthouses/repository"
	"guesthouse_backend/internal/guesthouses/service"
	apphttp "guesthouse_backend/internal/http"
	"guesthouse_backend/platform/logger"
	"guesthouse_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the guesthouse bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the guesthouse module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "guesthouses"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts guesthouse routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/guesthouses")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
