//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance with a pgx
// pool connected to it.
type PostgresContainer struct {
	Container testcontainers.Container
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts a PostgreSQL container and connects a pool.
// The container and pool are torn down by t.Cleanup.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("phonebook"),
		tcpostgres.WithUsername("phonebook"),
		tcpostgres.WithPassword("phonebook"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to connect pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping postgres: %v", err)
	}

	return &PostgresContainer{Container: container, Pool: pool}
}

// TruncatePersons clears the persons table between tests.
func (p *PostgresContainer) TruncatePersons(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, "TRUNCATE TABLE persons")
	return err
}
