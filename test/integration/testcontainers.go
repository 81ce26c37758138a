package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/audit"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	RawDB       *sql.DB
	Container   testcontainers.Container
	DatabaseURL string // Connection string for the test database
	Store       *audit.Store
	BinaryPath  string // rsactl binary, empty when not provided
}

// NewTestContext starts a PostgreSQL testcontainer and migrates the audit
// schema into it. Set RSACTL_BINARY to the path of a built rsactl to also run
// the CLI scenarios:
//
//	go build -o rsactl ./cmd/rsactl
//	INTEGRATION_TEST=1 RSACTL_BINARY=$(pwd)/rsactl go test -v ./test/integration/...
func NewTestContext(ctx context.Context) (*TestContext, error) {
	binaryPath := os.Getenv("RSACTL_BINARY")
	if binaryPath != "" {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("RSACTL_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("rsa_audit_test"),
		tcpostgres.WithUsername("rsa"),
		tcpostgres.WithPassword("rsa"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	if err := audit.Migrate(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to migrate audit schema: %w", err)
	}

	rawDB, err := sql.Open("postgres", connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &TestContext{
		RawDB:       rawDB,
		Container:   pgContainer,
		DatabaseURL: connStr,
		Store:       audit.NewStoreWithDB(rawDB),
		BinaryPath:  binaryPath,
	}, nil
}

// Reset empties the audit table between scenarios
func (tc *TestContext) Reset(ctx context.Context) error {
	_, err := tc.RawDB.ExecContext(ctx, "TRUNCATE audit_messages")
	return err
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
