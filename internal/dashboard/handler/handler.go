// Package handler serves the dashboard tabs over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/service"
	"horse_portal_backend/internal/dashboard/transport"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/httpkit"
	"horse_portal_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// Handler handles dashboard requests.
type Handler struct {
	svc           *service.Service
	val           *validator.Validator
	defaultLocale string
	maxUpload     int64
}

// New creates a dashboard handler.
func New(svc *service.Service, val *validator.Validator, defaultLocale string, maxUpload int64) *Handler {
	return &Handler{svc: svc, val: val, defaultLocale: defaultLocale, maxUpload: maxUpload}
}

// RegisterRoutes registers the tab routes. Account mutations go through accountLimit.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, accountLimit gin.HandlerFunc) {
	rg.GET("/overview", h.Overview)

	rg.GET("/orders", h.ListOrders)
	rg.PATCH("/orders/:id/status", h.UpdateOrderStatus)

	rg.GET("/favorites", h.ListFavorites)
	rg.POST("/favorites", h.AddFavorite)
	rg.DELETE("/favorites/:id", h.RemoveFavorite)

	rg.GET("/billing", h.Billing)

	rg.GET("/settings/profile", h.Profile)
	rg.PATCH("/settings/profile", h.UpdateProfile)
	rg.POST("/settings/password", accountLimit, h.ChangePassword)
	rg.POST("/settings/delete-account", accountLimit, h.DeleteAccount)
	rg.POST("/settings/logout", h.Logout)

	rg.GET("/stable", h.Stable)
	rg.POST("/stable/reservations/:id/decision", h.DecideReservation)

	rg.GET("/products", h.ListProducts)
	rg.POST("/products", h.CreateProduct)
	rg.PUT("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.DeleteProduct)
	rg.POST("/products/:id/image", h.SetProductImage)

	rg.GET("/courses", h.listItems(contentstore.TypeCourse))
	rg.POST("/courses", h.CreateCourse)
	rg.PUT("/courses/:id", h.UpdateCourse)
	rg.DELETE("/courses/:id", h.deleteItem(contentstore.TypeCourse))

	rg.GET("/books", h.listItems(contentstore.TypeBook))
	rg.POST("/books", h.CreateBook)
	rg.PUT("/books/:id", h.UpdateBook)
	rg.DELETE("/books/:id", h.deleteItem(contentstore.TypeBook))
}

func (h *Handler) Overview(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.Overview(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) ListOrders(c *gin.Context) {
	var req transport.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if !h.validate(c, req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.Orders(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transport.UpdateOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.UpdateOrderStatus(c.Request.Context(), h.translator(c), identity.UserID(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) ListFavorites(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.Favorites(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) AddFavorite(c *gin.Context) {
	var req transport.AddFavoriteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, created, err := h.svc.AddFavorite(c.Request.Context(), identity.UserID(), uuid.MustParse(req.ServiceID))
	if httpkit.HandleError(c, err) {
		return
	}
	if created {
		httpkit.Created(c, result)
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	serviceID, ok := pathID(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if httpkit.HandleError(c, h.svc.RemoveFavorite(c.Request.Context(), identity.UserID(), serviceID)) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) Billing(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.Billing(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Profile(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.Profile(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req transport.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.UpdateProfile(c.Request.Context(), h.translator(c), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req transport.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if httpkit.HandleError(c, h.svc.ChangePassword(c.Request.Context(), identity.Token(), req)) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	var req transport.DeleteAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteAccount(c.Request.Context(), identity.UserID(), identity.Token(), req)) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) Logout(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if httpkit.HandleError(c, h.svc.Logout(c.Request.Context(), identity.Token())) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) Stable(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.Stable(c.Request.Context(), h.translator(c), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) DecideReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transport.ReservationDecisionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.DecideReservation(c.Request.Context(), h.translator(c), identity.UserID(), id, req.Decision)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) ListProducts(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.Products(c.Request.Context(), h.translator(c), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req transport.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.CreateProduct(c.Request.Context(), h.translator(c), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transport.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.UpdateProduct(c.Request.Context(), h.translator(c), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteProduct(c.Request.Context(), h.translator(c), identity.UserID(), id)) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) SetProductImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	file, err := httpkit.ReadUpload(c, "file", h.maxUpload)
	if httpkit.HandleError(c, err) {
		return
	}
	result, err := h.svc.SetProductImage(c.Request.Context(), h.translator(c), identity.UserID(), id, contentstore.AssetUpload{
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req transport.CourseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.CreateCourse(c.Request.Context(), h.translator(c), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transport.CourseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.UpdateCourse(c.Request.Context(), h.translator(c), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) CreateBook(c *gin.Context) {
	var req transport.BookRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.CreateBook(c.Request.Context(), h.translator(c), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transport.BookRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.UpdateBook(c.Request.Context(), h.translator(c), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) listItems(docType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := httpkit.MustGetIdentity(c)
		if identity == nil {
			return
		}
		result, err := h.svc.Items(c.Request.Context(), h.translator(c), identity.UserID(), docType)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, result)
	}
}

func (h *Handler) deleteItem(docType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		identity := httpkit.MustGetIdentity(c)
		if identity == nil {
			return
		}
		if httpkit.HandleError(c, h.svc.DeleteItem(c.Request.Context(), h.translator(c), identity.UserID(), id, docType)) {
			return
		}
		httpkit.NoContent(c)
	}
}

func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	return h.validate(c, req)
}

func (h *Handler) validate(c *gin.Context, req any) bool {
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}

func (h *Handler) translator(c *gin.Context) i18n.Translator {
	return i18n.New(i18n.Negotiate(c.GetHeader("Accept-Language"), h.defaultLocale))
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
