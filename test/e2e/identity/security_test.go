package identity_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestInvalidCredentials verifies that unknown accounts and wrong
// passwords fail the same way.
func TestInvalidCredentials(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	_, _ = onboardTenant(t, client, "stark", nil)

	_, err := client.Login(t.Context(), authsdk.LoginRequest{Email: "admin@stark.test", Password: "wrong-password"})
	assertCode(t, err, authsdk.CodeBadCredentials)

	_, err = client.Login(t.Context(), authsdk.LoginRequest{Email: "nobody@stark.test", Password: adminPassword})
	assertCode(t, err, authsdk.CodeBadCredentials)
}

// TestInvalidAccessToken verifies protected endpoints reject forged tokens.
func TestInvalidAccessToken(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	forged := client.NewSession("invalid-token-12345", time.Now().Add(time.Hour))
	_, err := forged.Me(t.Context())
	assertCode(t, err, authsdk.CodeUnauthenticated)

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

// TestPasswordResetDoesNotRevealAccounts verifies that reset requests are
// accepted for unknown emails and that bogus tokens are rejected.
func TestPasswordResetDoesNotRevealAccounts(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	ctx := t.Context()
	_, _ = onboardTenant(t, client, "wayne", nil)

	require.NoError(t, client.RequestPasswordReset(ctx, "admin@wayne.test"))
	require.NoError(t, client.RequestPasswordReset(ctx, "ghost@wayne.test"))

	err := client.ConfirmPasswordReset(ctx, "not-a-real-token", "N3w-Passw0rd!!")
	assertCode(t, err, authsdk.CodeResetTokenNotFound)
}

// TestLoginRateLimit verifies the strict limit on credential endpoints
// with production settings.
func TestLoginRateLimit(t *testing.T) {
	baseURL, cleanup := setupIdentityContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	req := authsdk.LoginRequest{Email: "nobody@example.test", Password: "wrong-password"}

	limited := false
	for range 10 {
		_, err := client.Login(t.Context(), req)
		require.Error(t, err)
		if authsdk.HasCode(err, authsdk.CodeRateLimited) {
			limited = true
			break
		}
		assertCode(t, err, authsdk.CodeBadCredentials)
	}
	require.True(t, limited, "login should be rate limited after the burst is spent")
}
