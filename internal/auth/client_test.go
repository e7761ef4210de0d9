package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/logger"
)

func TestClientVerify(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, verifyPath, r.URL.Path)
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			_ = json.NewEncoder(w).Encode(map[string]any{"authenticated": true, "user": map[string]any{"id": userID.String()}})
		case "Bearer anon":
			_ = json.NewEncoder(w).Encode(map[string]any{"authenticated": false})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())

	principal, err := client.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)

	_, err = client.Verify(context.Background(), "anon")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = client.Verify(context.Background(), "broken")
	assert.True(t, apperr.Is(err, apperr.KindUnavailable))
}

func TestClientAccountMutationsSurfaceMessages(t *testing.T) {
	var got ChangePasswordRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case changePasswordPath:
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"current password is incorrect"}`))
		case logoutPath:
			w.WriteHeader(http.StatusNoContent)
		case deleteAccountPath:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())
	ctx := context.Background()

	err := client.ChangePassword(ctx, "tok", ChangePasswordRequest{CurrentPassword: "a", NewPassword: "b"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	assert.Equal(t, "current password is incorrect", err.Error())
	assert.Equal(t, "b", got.NewPassword)

	assert.NoError(t, client.Logout(ctx, "tok"))
	assert.True(t, apperr.Is(client.DeleteAccount(ctx, "tok", DeleteAccountRequest{}), apperr.KindUnavailable))
}

func TestClientUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger.Nop())
	_, err := client.Verify(context.Background(), "x")
	assert.True(t, apperr.Is(err, apperr.KindUnavailable))
}

func TestJWTVerifier(t *testing.T) {
	userID := uuid.New()
	sign := func(claims jwt.MapClaims, secret string) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}
	v := NewJWTVerifier("s3cret")
	exp := time.Now().Add(time.Hour).Unix()

	principal, err := v.Verify(context.Background(), sign(jwt.MapClaims{"sub": userID.String(), "type": "access", "roles": []string{"supplier"}, "exp": exp}, "s3cret"))
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, []string{"supplier"}, principal.Roles)

	_, err = v.Verify(context.Background(), sign(jwt.MapClaims{"sub": userID.String(), "exp": exp}, "other"))
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = v.Verify(context.Background(), sign(jwt.MapClaims{"sub": userID.String(), "type": "refresh", "exp": exp}, "s3cret"))
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}
