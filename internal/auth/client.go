package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/httpkit"
	"horse_portal_backend/platform/logger"
)

const (
	verifyPath         = "/api/auth/verify"
	changePasswordPath = "/api/auth/change-password"
	deleteAccountPath  = "/api/auth/delete-account"
	logoutPath         = "/api/auth/logout"

	defaultTimeout = 10 * time.Second
)

// Client is the HTTP client for the external auth API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// NewClient creates a new auth API client.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}
}

var (
	_ httpkit.TokenVerifier = (*Client)(nil)
	_ Accounts              = (*Client)(nil)
)

type verifyResponse struct {
	Authenticated bool `json:"authenticated"`
	User          *struct {
		ID    string   `json:"id"`
		Roles []string `json:"roles"`
	} `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Verify resolves token through GET /api/auth/verify.
func (c *Client) Verify(ctx context.Context, token string) (httpkit.Principal, error) {
	resp, err := c.do(ctx, http.MethodGet, verifyPath, token, nil)
	if err != nil {
		return httpkit.Principal{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return httpkit.Principal{}, apperr.Unauthorized("not authenticated")
	}
	if resp.StatusCode != http.StatusOK {
		return httpkit.Principal{}, apperr.Unavailable("auth verification failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return httpkit.Principal{}, apperr.Unavailable("auth verification failed", fmt.Errorf("decode response: %w", err))
	}
	if !body.Authenticated || body.User == nil {
		return httpkit.Principal{}, apperr.Unauthorized("not authenticated")
	}

	userID, err := uuid.Parse(body.User.ID)
	if err != nil {
		return httpkit.Principal{}, apperr.Unauthorized("not authenticated")
	}
	return httpkit.Principal{UserID: userID, Roles: body.User.Roles}, nil
}

// ChangePassword forwards a password change for the token's user.
func (c *Client) ChangePassword(ctx context.Context, token string, req ChangePasswordRequest) error {
	return c.post(ctx, changePasswordPath, token, req)
}

// DeleteAccount deletes the token's user.
func (c *Client) DeleteAccount(ctx context.Context, token string, req DeleteAccountRequest) error {
	return c.post(ctx, deleteAccountPath, token, req)
}

// Logout ends the token's session.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.post(ctx, logoutPath, token, struct{}{})
}

func (c *Client) post(ctx context.Context, path, token string, payload any) error {
	resp, err := c.do(ctx, http.MethodPost, path, token, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := readErrorMessage(resp.Body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperr.Unauthorized(fallback(message, "not authenticated"))
	case resp.StatusCode < 500:
		return apperr.BadRequest(fallback(message, "request rejected"))
	default:
		return apperr.Unavailable(fallback(message, "auth service unavailable"), fmt.Errorf("%s: status %d", path, resp.StatusCode))
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		req.AddCookie(&http.Cookie{Name: httpkit.TokenCookie, Value: token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.BackendError("auth "+path, err)
		}
		return nil, apperr.Unavailable("auth service unavailable", err)
	}
	return resp, nil
}

func readErrorMessage(r io.Reader) string {
	var body errorResponse
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
