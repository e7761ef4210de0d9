// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"
	"time"

	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/httpkit"
	"horse_portal_backend/platform/logger"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP settings.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness/health checks (e.g., DB ping).
	Health HealthChecker
	// Verifier resolves bearer tokens for the protected group.
	Verifier httpkit.TokenVerifier
	// RedirectDelay is attached to login and eligibility redirects.
	RedirectDelay time.Duration
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
