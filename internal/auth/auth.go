// Package auth talks to the external auth API that owns user credentials.
// It verifies bearer tokens for the HTTP layer and forwards the account
// mutations (password change, account deletion, logout) of the settings tab.
package auth

import (
	"context"
	"strings"

	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/httpkit"
	"horse_portal_backend/platform/logger"
)

// Accounts is the account mutation surface of the auth API.
type Accounts interface {
	ChangePassword(ctx context.Context, token string, req ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, token string, req DeleteAccountRequest) error
	Logout(ctx context.Context, token string) error
}

// ChangePasswordRequest is forwarded to POST /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// DeleteAccountRequest is forwarded to POST /api/auth/delete-account.
type DeleteAccountRequest struct {
	Password string `json:"password,omitempty"`
}

// NewVerifier picks local JWT verification when a secret is configured and
// falls back to the remote verify endpoint otherwise.
func NewVerifier(cfg config.AuthConfig, client *Client) httpkit.TokenVerifier {
	if secret := strings.TrimSpace(cfg.GetJWTAccessSecret()); secret != "" {
		return NewJWTVerifier(secret)
	}
	return client
}

// NewFromConfig builds the remote client.
func NewFromConfig(cfg config.AuthConfig, log *logger.Logger) *Client {
	return NewClient(cfg.GetAuthAPIURL(), cfg.GetAuthTimeout(), log)
}
