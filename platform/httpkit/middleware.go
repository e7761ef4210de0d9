// Package httpkit provides HTTP middleware infrastructure.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// ContextUserIDKey is the gin context key for the authenticated user ID.
	ContextUserIDKey = "userID"
	// ContextRolesKey is the gin context key for the user's roles.
	ContextRolesKey = "roles"
	// ContextTokenKey is the gin context key for the raw bearer token.
	ContextTokenKey = "token"
	// ContextRedirectDelayKey is the gin context key for the redirect delay.
	ContextRedirectDelayKey = "redirectDelay"

	// TokenCookie is read when no Authorization header is sent.
	TokenCookie = "token"

	// DefaultRedirectDelay is how long clients show a message before redirecting.
	DefaultRedirectDelay = 3 * time.Second

	errMissingToken = "missing token"
	errInvalidToken = "invalid token"
)

// Principal is the verified caller behind a token.
type Principal struct {
	UserID uuid.UUID
	Roles  []string
}

// TokenVerifier resolves a bearer token to a Principal.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// RequestLogger logs HTTP requests with timing.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		log.HTTPRequest(c.Request.Method, path, c.Writer.Status(), float64(latency.Milliseconds()), c.ClientIP())
	}
}

// RequestID tags every request with an id for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SecurityHeaders adds security headers to responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")

		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// IPRateLimiter manages per-IP rate limiters.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	log      *logger.Logger
}

// NewIPRateLimiter creates a new IP-based rate limiter.
func NewIPRateLimiter(r rate.Limit, burst int, log *logger.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  r,
		burst: burst,
		log:   log,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	limiter, _ := i.limiters.LoadOrStore(ip, rate.NewLimiter(i.rate, i.burst))
	return limiter.(*rate.Limiter)
}

// RateLimit returns a middleware that rate limits by IP.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !i.getLimiter(ip).Allow() {
			if i.log != nil {
				i.log.RateLimitExceeded(ip, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// NewAccountRateLimiter creates the stricter limiter used on account
// mutations (password change, account deletion): 5 requests per minute.
func NewAccountRateLimiter(log *logger.Logger) *IPRateLimiter {
	return NewIPRateLimiter(rate.Limit(5.0/60.0), 5, log)
}

// AuthRequired returns middleware that resolves the caller through verifier.
// Failures abort with 401 and a redirect to the login page after delay.
func AuthRequired(verifier TokenVerifier, delay time.Duration, log *logger.Logger) gin.HandlerFunc {
	if delay <= 0 {
		delay = DefaultRedirectDelay
	}
	return func(c *gin.Context) {
		c.Set(ContextRedirectDelayKey, delay)

		rawToken, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			cookie, err := c.Cookie(TokenCookie)
			if err != nil || strings.TrimSpace(cookie) == "" {
				abortWith(c, apperr.Unauthorized(errMissingToken).WithRedirect(LoginPath, delay))
				return
			}
			rawToken = strings.TrimSpace(cookie)
		}

		principal, err := verifier.Verify(c.Request.Context(), rawToken)
		if err != nil {
			if !apperr.Is(err, apperr.KindUnauthorized) && log != nil {
				log.BackendError("auth.verify", err)
			}
			abortWith(c, apperr.Unauthorized(errInvalidToken).WithRedirect(LoginPath, delay))
			return
		}

		c.Set(ContextUserIDKey, principal.UserID)
		c.Set(ContextRolesKey, principal.Roles)
		c.Set(ContextTokenKey, rawToken)
		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, principal.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearerToken(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	rawToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if rawToken == "" {
		return "", false
	}

	return rawToken, true
}
