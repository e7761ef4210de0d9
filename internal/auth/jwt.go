package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/httpkit"
)

// JWTVerifier validates HMAC-signed access tokens locally.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for tokens signed with secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

var _ httpkit.TokenVerifier = (*JWTVerifier)(nil)

// Verify parses token and returns its subject and roles.
func (v *JWTVerifier) Verify(_ context.Context, token string) (httpkit.Principal, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return httpkit.Principal{}, apperr.Unauthorized("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return httpkit.Principal{}, apperr.Unauthorized("invalid token")
	}
	if tokenType, present := claims["type"]; present && tokenType != "access" {
		return httpkit.Principal{}, apperr.Unauthorized("invalid token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return httpkit.Principal{}, apperr.Unauthorized("invalid token")
	}
	return httpkit.Principal{UserID: userID, Roles: extractRoles(claims["roles"])}, nil
}

func extractRoles(value interface{}) []string {
	roles := make([]string, 0)
	switch typed := value.(type) {
	case []string:
		return append(roles, typed...)
	case []interface{}:
		for _, item := range typed {
			if text, ok := item.(string); ok {
				roles = append(roles, text)
			}
		}
	}
	return roles
}
