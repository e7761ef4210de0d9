package locations

import (
	"github.com/gin-gonic/gin"

	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/httpkit"
	"horse_portal_backend/platform/logger"
)

// Handler serves the public reference lists.
type Handler struct {
	source Source
	log    *logger.Logger
}

// NewHandler creates a locations handler.
func NewHandler(source Source, log *logger.Logger) *Handler {
	return &Handler{source: source, log: log}
}

// ListCountries returns every country.
func (h *Handler) ListCountries(c *gin.Context) {
	options, err := h.source.Countries(c.Request.Context())
	if h.failed(c, "locations.countries", err) {
		return
	}
	httpkit.OK(c, gin.H{"items": options})
}

// ListGovernorates returns the governorates of a country.
func (h *Handler) ListGovernorates(c *gin.Context) {
	options, err := h.source.Governorates(c.Request.Context(), c.Param("id"))
	if h.failed(c, "locations.governorates", err) {
		return
	}
	httpkit.OK(c, gin.H{"items": options})
}

// ListCities returns the cities of a governorate.
func (h *Handler) ListCities(c *gin.Context) {
	options, err := h.source.Cities(c.Request.Context(), c.Param("id"))
	if h.failed(c, "locations.cities", err) {
		return
	}
	httpkit.OK(c, gin.H{"items": options})
}

func (h *Handler) failed(c *gin.Context, op string, err error) bool {
	if err == nil {
		return false
	}
	h.log.BackendError(op, err)
	return httpkit.HandleError(c, apperr.Unavailable("failed to load locations", err))
}
