// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"horse_portal_backend/platform/apperr"
)

// LoginPath is where unauthenticated clients are sent.
const LoginPath = "/login"

// Identity represents the authenticated user's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access user information without depending on Gin.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// Roles returns the user's assigned roles.
	Roles() []string
	// HasRole checks if the user has a specific role.
	HasRole(role string) bool
	// Token returns the bearer token the request was authenticated with.
	// It is forwarded to the auth API for account mutations.
	Token() string
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	roles         []string
	token         string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID { return i.userID }

func (i *identity) Roles() []string { return i.roles }

func (i *identity) HasRole(role string) bool { return lo.Contains(i.roles, role) }

func (i *identity) Token() string { return i.token }

func (i *identity) IsAuthenticated() bool { return i.authenticated }

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	if !userOK {
		return &identity{authenticated: false}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	roles := c.GetStringSlice(ContextRolesKey)
	return &identity{
		userID:        uid,
		roles:         roles,
		token:         c.GetString(ContextTokenKey),
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 and a login redirect and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		abortWith(c, apperr.Unauthorized("unauthorized").WithRedirect(LoginPath, redirectDelay(c)))
		return nil
	}
	return id
}

func redirectDelay(c *gin.Context) time.Duration {
	if v, ok := c.Get(ContextRedirectDelayKey); ok {
		if d, ok := v.(time.Duration); ok {
			return d
		}
	}
	return DefaultRedirectDelay
}

func abortWith(c *gin.Context, err *apperr.Error) {
	c.AbortWithStatusJSON(err.HTTPStatus(), ErrorResponse{Error: err.Message, Details: err.Details})
}
