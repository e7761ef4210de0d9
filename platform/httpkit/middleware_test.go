package httpkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/platform/apperr"
)

type stubVerifier struct {
	principal Principal
	err       error
	seen      string
}

func (s *stubVerifier) Verify(_ context.Context, token string) (Principal, error) {
	s.seen = token
	return s.principal, s.err
}

func newAuthRouter(v TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(v, 3*time.Second, nil), func(c *gin.Context) {
		id := MustGetIdentity(c)
		if id == nil {
			return
		}
		OK(c, gin.H{"id": id.UserID().String(), "token": id.Token()})
	})
	return r
}

func TestAuthRequiredMissingTokenRedirectsToLogin(t *testing.T) {
	r := newAuthRouter(&stubVerifier{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body struct {
		Error   string                 `json:"error"`
		Details apperr.RedirectDetails `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, LoginPath, body.Details.Redirect)
	assert.Equal(t, 3, body.Details.DelaySeconds)
}

func TestAuthRequiredAcceptsBearerAndCookie(t *testing.T) {
	userID := uuid.New()
	v := &stubVerifier{principal: Principal{UserID: userID}}
	r := newAuthRouter(v)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", v.seen)
	assert.Contains(t, rec.Body.String(), userID.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "from-cookie"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from-cookie", v.seen)
}

func TestAuthRequiredRejectsFailedVerification(t *testing.T) {
	r := newAuthRouter(&stubVerifier{err: apperr.Unauthorized("nope")})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
	}{
		{apperr.NotFound("x"), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", apperr.Conflict("x")), http.StatusConflict},
		{apperr.StepValidation("invalid", 2, map[string]string{"about_ar": "too short"}), http.StatusUnprocessableEntity},
		{apperr.Unavailable("upstream", errors.New("boom")), http.StatusBadGateway},
		{errors.New("raw"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		assert.True(t, HandleError(c, tc.err))
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}
}

func TestRateLimitBlocksBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", NewIPRateLimiter(0, 1, nil).RateLimit(), func(c *gin.Context) { NoContent(c) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/x", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/x", nil))

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
