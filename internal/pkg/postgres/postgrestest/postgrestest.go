// Package postgrestest starts a throwaway migrated PostgreSQL for
// repository tests.
package postgrestest

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-pricing-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-pricing-service/migrations"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const image = "postgres:16-alpine"

// Start runs a container, applies every migration and returns a connection.
// The container is removed when t finishes.
func Start(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("omnipos_pricing"),
		tcpostgres.WithUsername("omnipos"),
		tcpostgres.WithPassword("omnipos"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.Migrate(db, migrations.FS, "."))
	return db
}
