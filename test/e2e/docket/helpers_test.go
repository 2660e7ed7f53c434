package docket_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/docket/pkg/docketsdk"
)

/*
 * Container setup and shared steps for the docket end-to-end tests. Every
 * test gets a fresh container with its own sqlite database.
 */

const (
	testImageName = "docket-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "admin@firm.com"
	adminName      = "Olive Admin"
	adminPassword  = "Admin123!"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stdout, "skipping docket e2e tests in short mode")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building docket Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up docket Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/docket/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

func baseEnv() map[string]string {
	return map[string]string{
		"DOCKET_BOOTSTRAP_TOKEN": bootstrapToken,
		"DOCKET_ISSUER":          "docket-e2e",
		"DOCKET_NUM_KEYS":        "1",
		"DOCKET_PUBLIC_URL":      "http://docket.test",
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
	}
}

// relaxedLimits keeps rapid test traffic clear of the production limits.
func relaxedLimits(env map[string]string) map[string]string {
	for k, v := range map[string]string{
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	} {
		env[k] = v
	}
	return env
}

// startContainer runs the image with env and returns its base URL. The
// container is terminated when the test ends.
func startContainer(t *testing.T, env map[string]string) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

func setupDocketContainer(t *testing.T) *docketsdk.Client {
	t.Helper()
	return docketsdk.NewClient(startContainer(t, relaxedLimits(baseEnv())))
}

// bootstrapAdmin creates the first admin and logs them in.
func bootstrapAdmin(t *testing.T, client *docketsdk.Client) *docketsdk.Session {
	t.Helper()
	ctx := t.Context()

	admin, err := client.Bootstrap(ctx, bootstrapToken, docketsdk.BootstrapRequest{
		Email:    adminEmail,
		FullName: adminName,
		Password: adminPassword,
	})
	require.NoError(t, err, "bootstrap should succeed")
	require.Equal(t, "org_admin", admin.Role)

	session, err := client.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err, "admin login should succeed")
	return session
}

// inviteAndRegister walks a new user through invitation and sign up, then
// logs them in.
func inviteAndRegister(t *testing.T, client *docketsdk.Client, admin *docketsdk.Session, email, name, role string) *docketsdk.Session {
	t.Helper()
	ctx := t.Context()

	inv, err := admin.CreateInvitation(ctx, docketsdk.CreateInvitationRequest{Email: email, Role: role})
	require.NoError(t, err)

	_, err = client.Register(ctx, docketsdk.RegisterRequest{
		Token:           inv.Token,
		FullName:        name,
		Email:           email,
		Password:        "password1",
		ConfirmPassword: "password1",
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, email, "password1")
	require.NoError(t, err)
	return session
}
