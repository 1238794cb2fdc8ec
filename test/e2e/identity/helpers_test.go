package identity_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for identity service end-to-end
 * tests: container setup, tenant onboarding and assertions.
 */

const (
	testImageName = "roster-identity-test:latest"

	provisioningToken = "test-provisioning-token-12345"
	jwtSecret         = "e2e-secret-that-is-at-least-32-bytes-long"
	adminPassword     = "Admin-Passw0rd!"
	memberPassword    = "Member-Passw0rd!"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Identity Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Identity Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/identity/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// baseEnv is the container environment shared by every test.
func baseEnv() map[string]string {
	return map[string]string{
		"PROVISIONING_TOKEN": provisioningToken,
		"JWT_SECRET":         jwtSecret,
		"JWT_ISSUER":         "roster-e2e",
		"BCRYPT_COST":        "4",
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
	}
}

// setupIdentityContainer starts the identity service with relaxed rate
// limits and returns its base URL.
func setupIdentityContainer(t *testing.T) (string, func()) {
	t.Helper()

	env := baseEnv()
	// Tests make many rapid requests which would otherwise hit the strict limits
	env["RATELIMIT_STRICT_REQUESTS"] = "1000"
	env["RATELIMIT_STRICT_BURST"] = "1000"
	env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
	env["RATELIMIT_MODERATE_BURST"] = "1000"

	return startContainer(t, env)
}

// setupIdentityContainerWithDefaultRateLimits starts the identity service
// with production rate limits. Only rate limit tests should use it.
func setupIdentityContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// onboardTenant provisions a tenant, registers its first admin and returns
// the admin's session.
func onboardTenant(t *testing.T, client *authsdk.SDKClient, code string, maxMembers *int) (*authsdk.ProvisionedTenant, *authsdk.Session) {
	t.Helper()
	ctx := t.Context()

	adminEmail := "admin@" + code + ".test"
	provisioned, err := client.ProvisionTenant(ctx, provisioningToken, authsdk.ProvisionTenantRequest{
		Code:            code,
		Name:            "Tenant " + code,
		MaxMembers:      maxMembers,
		AdminEmail:      adminEmail,
		AdminEmployeeNo: "ADM-1",
	})
	require.NoError(t, err, "Provisioning should succeed")
	require.NotEmpty(t, provisioned.Invitation.Token, "First admin invitation should carry a token")

	_, err = client.Register(ctx, authsdk.RegisterRequest{
		InvitationToken: provisioned.Invitation.Token,
		Email:           adminEmail,
		Password:        adminPassword,
		FamilyName:      "Admin",
		GivenName:       "Ada",
	})
	require.NoError(t, err, "Admin registration should succeed")

	session, err := client.Authenticate(ctx, authsdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err, "Admin login should succeed")

	return provisioned, session
}

// inviteAndRegister has the admin invite a member, registers them and
// returns the member's session.
func inviteAndRegister(t *testing.T, client *authsdk.SDKClient, admin *authsdk.Session, email, employeeNo string) *authsdk.Session {
	t.Helper()
	ctx := t.Context()

	issued, err := admin.IssueInvitation(ctx, authsdk.IssueInvitationRequest{
		Email:      email,
		Role:       "employee",
		EmployeeNo: employeeNo,
	})
	require.NoError(t, err, "Issuing an invitation should succeed")

	_, err = client.Register(ctx, authsdk.RegisterRequest{
		InvitationToken: issued.Token,
		Email:           email,
		Password:        memberPassword,
		FamilyName:      "Member",
		GivenName:       employeeNo,
	})
	require.NoError(t, err, "Member registration should succeed")

	session, err := client.Authenticate(ctx, authsdk.LoginRequest{Email: email, Password: memberPassword})
	require.NoError(t, err, "Member login should succeed")
	return session
}

// assertCode checks that err is an API error carrying the given code.
func assertCode(t *testing.T, err error, code string, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	require.True(t, authsdk.HasCode(err, code), "expected %s, got: %v", code, err)
}

func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func intPtr(n int) *int { return &n }
