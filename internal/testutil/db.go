package testutil

import (
	"context"
	"fmt"
	"os"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestDSNEnv names the variable pointing tests at an existing PostgreSQL.
const TestDSNEnv = "ARPG_TEST_DSN"

// PostgresDSN returns a DSN for database tests: $ARPG_TEST_DSN when set,
// otherwise a fresh postgres:16 testcontainer. cleanup terminates the container.
func PostgresDSN(ctx context.Context) (dsn string, cleanup func(), err error) {
	if dsn := os.Getenv(TestDSNEnv); dsn != "" {
		return dsn, func() {}, nil
	}

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", nil, fmt.Errorf("starting postgres container: %w", err)
	}
	cleanup = func() {
		_ = testcontainers.TerminateContainer(container)
	}

	dsn, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("getting connection string: %w", err)
	}
	return dsn, cleanup, nil
}
