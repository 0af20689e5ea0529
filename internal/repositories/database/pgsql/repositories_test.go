package pgsql_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/postal_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/postal_ledger/internal/repositories/database/repotest"
	"github.com/SscSPs/postal_ledger/pkg/database"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
)

// These tests need a disposable database: PGSQL_TEST_URL=postgres://... go test ./...
// Every table is truncated between runs.
func TestPgxRepositories(t *testing.T) {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set, skipping Postgres repository tests")
	}
	ctx := context.Background()

	sqlDB, err := sql.Open("pgx", url)
	require.NoError(t, err)
	m, err := database.NewMigrator(database.MigrationsPostgres, sqlDB)
	require.NoError(t, err)
	require.NoError(t, database.MigrateUp(m))
	srcErr, dbErr := m.Close()
	require.NoError(t, srcErr)
	require.NoError(t, dbErr)

	pool, err := database.NewPgxPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })

	repotest.Run(t, func(t *testing.T) portsrepo.RepositoryProvider {
		_, err := pool.Exec(ctx, `TRUNCATE closing_revisions, daily_closings, postings, staff_users RESTART IDENTITY CASCADE;`)
		require.NoError(t, err)
		return pgsql.NewRepositoryProvider(pool)
	})
}
