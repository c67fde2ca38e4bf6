package db

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/arpg/internal/testutil"
)

// testDSN and testPool are shared by every test of the package.
// testPool stays nil when no PostgreSQL is reachable; setupTestDB then skips.
var (
	testDSN  string
	testPool *pgxpool.Pool
)

// TestMain prepares PostgreSQL ($ARPG_TEST_DSN or a testcontainer) and applies migrations.
func TestMain(m *testing.M) {
	os.Exit(runTests(m))
}

func runTests(m *testing.M) int {
	ctx := context.Background()

	dsn, cleanup, err := testutil.PostgresDSN(ctx)
	if err != nil {
		log.Printf("postgres unavailable, database tests will be skipped: %v", err)
		return m.Run()
	}
	defer cleanup()
	testDSN = dsn

	if err := RunMigrations(ctx, testDSN); err != nil {
		log.Printf("running migrations: %v", err)
		return 1
	}

	database, err := New(ctx, testDSN)
	if err != nil {
		log.Printf("connecting to test db: %v", err)
		return 1
	}
	defer database.Close()
	testPool = database.Pool()

	return m.Run()
}

// setupTestDB returns the shared pool with monster_templates emptied, or skips the test.
func setupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()
	if testPool == nil {
		tb.Skip("postgres not available")
	}

	if _, err := testPool.Exec(context.Background(), "TRUNCATE monster_templates"); err != nil {
		tb.Fatalf("truncating monster_templates: %v", err)
	}
	return testPool
}
