// Package dashboard provides the account dashboard module.
package dashboard

import (
	"horse_portal_backend/internal/auth"
	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/handler"
	"horse_portal_backend/internal/dashboard/repository"
	"horse_portal_backend/internal/dashboard/service"
	"horse_portal_backend/internal/events"
	apphttp "horse_portal_backend/internal/http"
	"horse_portal_backend/platform/logger"
	"horse_portal_backend/platform/validator"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// Deps are the collaborators of the dashboard.
type Deps struct {
	Store         contentstore.Store
	Assets        contentstore.AssetStore
	Accounts      auth.Accounts
	Bus           events.Bus
	Validator     *validator.Validator
	Region        string
	DefaultLocale string
	MaxUpload     int64
	Log           *logger.Logger
}

// NewModule creates the dashboard module.
func NewModule(d Deps) *Module {
	svc := service.New(repository.New(d.Store), d.Assets, d.Accounts, d.Bus, d.Region, d.Log)
	return &Module{handler: handler.New(svc, d.Validator, d.DefaultLocale, d.MaxUpload), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "dashboard" }

// Service returns the service layer.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts the dashboard under the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dashboard"), ctx.AccountRateLimiter.RateLimit())
}

var _ apphttp.Module = (*Module)(nil)
