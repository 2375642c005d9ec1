// Package auth provides the authentication bounded context module.
package auth

import (
	"guesthouse_backend/internal/auth/handler"
	"guesthouse_backend/internal/auth/repository"
	"guesthouse_backend/internal/auth/service"
	"guesthouse_backend/internal/config"
	"guesthouse_backend/internal/email"
	apphttp "guesthouse_backend/internal/http"
	"guesthouse_backend/platform/logger"
	"guesthouse_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, mailer email.Sender, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, mailer, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes carry the stricter limiter.
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/auth/me", m.handler.GetMe)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
