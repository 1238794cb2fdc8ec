package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ProvisioningTokenHeader authenticates calls to POST /v1/tenants.
const ProvisioningTokenHeader = "X-Provisioning-Token"

// SDKClient is a client for the roster identity service.
// It provides access to unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new identity service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for a token.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", req, nil)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeData(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Authenticate logs in and wraps the token in a Session.
func (c *SDKClient) Authenticate(ctx context.Context, req LoginRequest) (*Session, error) {
	login, err := c.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.NewSession(login.AccessToken, login.ExpiresAt), nil
}

// NewSession creates a session from a token obtained elsewhere.
func (c *SDKClient) NewSession(token string, expiresAt time.Time) *Session {
	return &Session{client: c, token: token, expiresAt: expiresAt}
}

// Register redeems an invitation.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/register", req, nil)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeData(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvitation looks up a pending invitation by its token.
func (c *SDKClient) GetInvitation(ctx context.Context, token string) (*Invitation, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/invitations/"+url.PathEscape(token), nil, nil)
	if err != nil {
		return nil, err
	}

	var out Invitation
	if err := decodeData(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPasswordReset asks for a reset token to be delivered. It succeeds
// whether or not the email belongs to an account.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/password-reset", PasswordResetRequest{Email: email}, nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeData(resp, &out, http.StatusAccepted)
}

// ConfirmPasswordReset sets a new password using a reset token.
func (c *SDKClient) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/password-reset/confirm", PasswordResetConfirmRequest{
		Token:       token,
		NewPassword: newPassword,
	}, nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeData(resp, &out, http.StatusOK)
}

// ProvisionTenant creates a tenant and its first admin invitation.
func (c *SDKClient) ProvisionTenant(ctx context.Context, provisioningToken string, req ProvisionTenantRequest) (*ProvisionedTenant, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/tenants", req, map[string]string{
		ProvisioningTokenHeader: provisioningToken,
	})
	if err != nil {
		return nil, err
	}

	var out ProvisionedTenant
	if err := decodeData(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
