package locations

import (
	"horse_portal_backend/internal/contentstore"
	apphttp "horse_portal_backend/internal/http"
	"horse_portal_backend/platform/logger"
)

// Module is the locations module implementing http.Module.
type Module struct {
	source  *StoreSource
	handler *Handler
}

// NewModule wires the reference-data source and its handler.
func NewModule(store contentstore.Store, log *logger.Logger) *Module {
	source := NewStoreSource(store)
	return &Module{source: source, handler: NewHandler(source, log)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "locations" }

// Source returns the shared Source for wizard cascades.
func (m *Module) Source() Source { return m.source }

// RegisterRoutes mounts the public location routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/locations")
	g.GET("/countries", m.handler.ListCountries)
	g.GET("/countries/:id/governorates", m.handler.ListGovernorates)
	g.GET("/governorates/:id/cities", m.handler.ListCities)
}

var _ apphttp.Module = (*Module)(nil)
