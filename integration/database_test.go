//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestHeartbeatWithMySQL tests the heartbeat CLI with a MySQL run backend.
func TestHeartbeatWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "heartbeat",
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/heartbeat?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("HEARTBEAT_RUN_BACKEND", "mysql")
	_ = os.Setenv("HEARTBEAT_RUN_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("HEARTBEAT_RUN_BACKEND") }()
	defer func() { _ = os.Unsetenv("HEARTBEAT_RUN_DB_CONNECT") }()

	runHeartbeatLifecycle(t)
}

// TestHeartbeatWithPostgres tests the heartbeat CLI with a PostgreSQL run backend.
func TestHeartbeatWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	pgC, err := postgres.Run(ctx, "postgres:18-alpine",
		postgres.WithDatabase("heartbeat"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("secret123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres password=secret123 dbname=heartbeat", host, port.Port())

	// Set environment variables
	_ = os.Setenv("HEARTBEAT_RUN_BACKEND", "postgresql")
	_ = os.Setenv("HEARTBEAT_RUN_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("HEARTBEAT_RUN_BACKEND") }()
	defer func() { _ = os.Unsetenv("HEARTBEAT_RUN_DB_CONNECT") }()

	runHeartbeatLifecycle(t)
}

// runHeartbeatLifecycle runs the CLI lifecycle against the active backend.
func runHeartbeatLifecycle(t *testing.T) {
	// Start from a clean slate
	err := runHeartbeatCommand(t, "runs", "clear")
	require.NoError(t, err)

	// Run metrics against the fixture feed
	err = runHeartbeatCommand(t, "metrics", "testdata/events.json")
	require.NoError(t, err)

	// Run heartbeat runs status
	err = runHeartbeatCommand(t, "runs", "status")
	require.NoError(t, err)
}
