package stables

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/listings"
	"horse_portal_backend/platform/httpkit"
	"horse_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSession   = "invalid session id"
)

// SubmitResponse is returned after the stable was created.
type SubmitResponse struct {
	StableID uuid.UUID `json:"stableId"`
	Redirect string    `json:"redirect"`
}

// NextResponse reports whether the step passed validation.
type NextResponse struct {
	View
	Valid bool `json:"valid"`
}

// Handler serves the stable wizard.
type Handler struct {
	svc           *Service
	val           *validator.Validator
	defaultLocale string
	maxUpload     int64
}

// NewHandler creates a stable wizard handler.
func NewHandler(svc *Service, val *validator.Validator, defaultLocale string, maxUpload int64) *Handler {
	return &Handler{svc: svc, val: val, defaultLocale: defaultLocale, maxUpload: maxUpload}
}

// Open checks eligibility and starts a session.
func (h *Handler) Open(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	locale := i18n.Negotiate(c.GetHeader("Accept-Language"), h.defaultLocale)
	view, err := h.svc.Open(c.Request.Context(), identity.UserID(), locale)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, view)
}

// Get returns the session view.
func (h *Handler) Get(c *gin.Context) {
	id, userID, ok := h.session(c)
	if !ok {
		return
	}
	view, err := h.svc.Get(id, userID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// Intent applies one edit.
func (h *Handler) Intent(c *gin.Context) {
	id, userID, ok := h.session(c)
	if !ok {
		return
	}
	var in Intent
	if err := c.ShouldBindJSON(&in); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(in); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}
	view, err := h.svc.Apply(c.Request.Context(), id, userID, in)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// Media stages a gallery image.
func (h *Handler) Media(c *gin.Context) {
	id, userID, ok := h.session(c)
	if !ok {
		return
	}
	file, err := httpkit.ReadUpload(c, "file", h.maxUpload)
	if httpkit.HandleError(c, err) {
		return
	}
	view, err := h.svc.Stage(id, userID, listings.StagedFile{
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// Next validates the current step and advances.
func (h *Handler) Next(c *gin.Context) {
	id, userID, ok := h.session(c)
	if !ok {
		return
	}
	view, valid, err := h.svc.Next(id, userID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, NextResponse{View: view, Valid: valid})
}

// Previous goes back one step.
func (h *Handler) Previous(c *gin.Context) {
	id, userID, ok := h.session(c)
	if !ok {
		return
	}
	view, err := h.svc.Previous(id, userID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// Submit stores the stable.
func (h *Handler) Submit(c *gin.Context) {
	id, userID, ok := h.session(c)
	if !ok {
		return
	}
	stableID, err := h.svc.Submit(c.Request.Context(), id, userID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, SubmitResponse{StableID: stableID, Redirect: listings.DashboardPath})
}

// Close ends the session.
func (h *Handler) Close(c *gin.Context) {
	id, userID, ok := h.session(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.Close(id, userID)) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) session(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSession, nil)
		return uuid.Nil, uuid.Nil, false
	}
	return id, identity.UserID(), true
}
