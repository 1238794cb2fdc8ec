package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session performs authenticated operations with a bearer token. Tokens
// are not refreshable; log in again once Expired reports true.
type Session struct {
	client    *SDKClient
	token     string
	expiresAt time.Time
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// Expired reports whether the token has passed its expiry. A zero expiry
// is never treated as expired.
func (s *Session) Expired() bool {
	return !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt)
}

// Me returns the profile of the session's account in its token's tenant.
func (s *Session) Me(ctx context.Context) (*Profile, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var out Profile
	if err := decodeData(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// IssueInvitation creates an invitation (admin or system_admin only).
func (s *Session) IssueInvitation(ctx context.Context, req IssueInvitationRequest) (*IssuedInvitation, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invitations", req)
	if err != nil {
		return nil, err
	}

	var out IssuedInvitation
	if err := decodeData(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelInvitation withdraws a pending invitation.
func (s *Session) CancelInvitation(ctx context.Context, id string) (*Invitation, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invitations/"+url.PathEscape(id)+"/cancel", nil)
	if err != nil {
		return nil, err
	}

	var out Invitation
	if err := decodeData(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnrollTOTP generates a new TOTP seed. MFA stays off until ActivateTOTP.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil)
	if err != nil {
		return nil, err
	}

	var out TOTPEnrollResponse
	if err := decodeData(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivateTOTP turns MFA on with a code from the enrolled seed.
func (s *Session) ActivateTOTP(ctx context.Context, code string) error {
	return s.postCode(ctx, "/v1/mfa/totp/activate", code)
}

// DisableTOTP turns MFA off; it needs a current code.
func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	return s.postCode(ctx, "/v1/mfa/totp/disable", code)
}

func (s *Session) postCode(ctx context.Context, path, code string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, TOTPCodeRequest{Code: code})
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeData(resp, &out, http.StatusOK)
}
