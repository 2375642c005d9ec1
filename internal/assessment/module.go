// Package assessment provides the safety assessment bounded context module.
package assessment

import (
	"guesthouse_backend/internal/assessment/handler"
	"guesthouse_backend/internal/assessment/pricing"
	"guesthouse_backend/internal/assessment/repository"
	"guesthouse_backend/internal/assessment/scoring"
	"guesthouse_backend/internal/assessment/service"
	authrepository "guesthouse_backend/internal/auth/repository"
	"guesthouse_backend/internal/email"
	apphttp "guesthouse_backend/internal/http"
	"guesthouse_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the assessment bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the assessment module. The engines are
// constructed by the caller so config loading failures surface at startup.
func NewModule(pool *pgxpool.Pool, guesthouses service.GuesthouseSource, env service.EnvironmentProvider, mailer email.Sender, scorer *scoring.Engine, pricer *pricing.Engine, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(guesthouses, authrepository.New(pool), env, scorer, pricer, repo, mailer, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assessment"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts assessment routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/guesthouses/:id/safety-assessment", m.handler.Assess)
	ctx.Protected.GET("/guesthouses/:id/assessments", m.handler.History)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
