//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDeedscoreWithMySQL tests the deedscore CLI with a MySQL store backend.
func TestDeedscoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "deedscore",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/deedscore?parseTime=true", host, port.Port())

	runStoreWorkflow(t, "mysql", connStr)
}

// TestDeedscoreWithPostgres tests the deedscore CLI with a PostgreSQL store backend.
func TestDeedscoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	runStoreWorkflow(t, "postgresql", connStr)
}

// runStoreWorkflow exercises migrate, save-on-score, status, and clear
// against a live database backend.
func runStoreWorkflow(t *testing.T, backend, connStr string) {
	// Set environment variables
	_ = os.Setenv("DEEDSCORE_STORE_BACKEND", backend)
	_ = os.Setenv("DEEDSCORE_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("DEEDSCORE_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("DEEDSCORE_STORE_DB_CONNECT") }()

	// Run deedscore store migrate
	err := runDeedscoreCommand(t, "store", "migrate")
	require.NoError(t, err)

	// Run deedscore store clear
	err = runDeedscoreCommand(t, "store", "clear")
	require.NoError(t, err)

	// Score the fixture set with --save to populate the store
	input := writePropertyFixture(t)
	err = runDeedscoreCommand(t, "batch", input, "--save")
	require.NoError(t, err)

	// Run deedscore store status
	err = runDeedscoreCommand(t, "store", "status")
	require.NoError(t, err)

	// Run deedscore calibration stats
	err = runDeedscoreCommand(t, "calibration", "stats")
	require.NoError(t, err)

	// Run deedscore store clear
	err = runDeedscoreCommand(t, "store", "clear")
	require.NoError(t, err)
}

func runDeedscoreCommand(t *testing.T, args ...string) error {
	deedscorePath := getDeedscoreBinary()
	cmd := exec.Command(deedscorePath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
