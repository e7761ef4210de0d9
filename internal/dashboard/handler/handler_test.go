package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/internal/auth"
	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/repository"
	"horse_portal_backend/internal/dashboard/service"
	"horse_portal_backend/internal/events"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/httpkit"
	"horse_portal_backend/platform/logger"
	"horse_portal_backend/platform/validator"
)

type noAccounts struct{}

func (noAccounts) ChangePassword(context.Context, string, auth.ChangePasswordRequest) error {
	return nil
}
func (noAccounts) DeleteAccount(context.Context, string, auth.DeleteAccountRequest) error {
	return nil
}
func (noAccounts) Logout(context.Context, string) error { return nil }

func newRouter(t *testing.T, store contentstore.Store, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.New(repository.New(store), contentstore.NewMemoryAssetStore(), noAccounts{},
		events.NewInMemoryBus(logger.Nop()), "EG", logger.Nop())
	h := New(svc, validator.New(), i18n.English, 1<<20)

	r := gin.New()
	g := r.Group("/dashboard", func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, userID)
		c.Set(httpkit.ContextTokenKey, "tok")
		c.Next()
	})
	h.RegisterRoutes(g, func(c *gin.Context) { c.Next() })
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFavoriteRoutes(t *testing.T) {
	store := contentstore.NewMemoryStore()
	svc, err := store.Create(context.Background(), contentstore.TypeService, nil, map[string]any{"name_en": "Farrier"})
	require.NoError(t, err)
	r := newRouter(t, store, uuid.New())

	rec := do(r, http.MethodPost, "/dashboard/favorites", map[string]string{"serviceId": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/dashboard/favorites", map[string]string{"serviceId": svc.ID.String()})
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = do(r, http.MethodPost, "/dashboard/favorites", map[string]string{"serviceId": svc.ID.String()})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodDelete, "/dashboard/favorites/"+svc.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestOrderStatusRejectsUnknownStatus(t *testing.T) {
	r := newRouter(t, contentstore.NewMemoryStore(), uuid.New())

	rec := do(r, http.MethodPatch, "/dashboard/orders/"+uuid.NewString()+"/status", map[string]string{"status": "shipped"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body httpkit.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgValidationFailed, body.Error)

	rec = do(r, http.MethodPatch, "/dashboard/orders/"+uuid.NewString()+"/status", map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodPatch, "/dashboard/orders/42/status", map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSupplierOnlyRoutesForbidOthers(t *testing.T) {
	store := contentstore.NewMemoryStore()
	userID := uuid.New()
	_, err := store.Create(context.Background(), contentstore.TypeUser, &userID, map[string]any{"userType": "horse_owner"})
	require.NoError(t, err)
	r := newRouter(t, store, userID)

	rec := do(r, http.MethodGet, "/dashboard/products", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(r, http.MethodPost, "/dashboard/settings/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
