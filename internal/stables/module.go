package stables

import (
	apphttp "horse_portal_backend/internal/http"
	"horse_portal_backend/platform/validator"
)

// Module is the stable wizard module implementing http.Module.
type Module struct {
	svc     *Service
	handler *Handler
}

// NewModule wires the stable wizard handler.
func NewModule(svc *Service, val *validator.Validator, defaultLocale string, maxUpload int64) *Module {
	return &Module{svc: svc, handler: NewHandler(svc, val, defaultLocale, maxUpload)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "stables" }

// Service returns the wizard service.
func (m *Module) Service() *Service { return m.svc }

// RegisterRoutes mounts the stable wizard under the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.Protected.Group("/wizards/stables")
	g.POST("", m.handler.Open)
	g.GET("/:id", m.handler.Get)
	g.DELETE("/:id", m.handler.Close)
	g.POST("/:id/intents", m.handler.Intent)
	g.POST("/:id/media", m.handler.Media)
	g.POST("/:id/next", m.handler.Next)
	g.POST("/:id/previous", m.handler.Previous)
	g.POST("/:id/submit", m.handler.Submit)
}

var _ apphttp.Module = (*Module)(nil)
