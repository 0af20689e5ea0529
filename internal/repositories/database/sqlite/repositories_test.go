package sqlite_test

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/postal_ledger/internal/repositories/database/repotest"
	"github.com/SscSPs/postal_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/postal_ledger/pkg/database"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// newRepos returns repositories over a fresh migrated in-memory database.
func newRepos(t *testing.T) portsrepo.RepositoryProvider {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqlDB, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name))
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := database.NewMigrator(database.MigrationsSQLite, sqlDB)
	require.NoError(t, err)
	require.NoError(t, database.MigrateUp(m))

	db, err := database.OpenGorm(sqlDB)
	require.NoError(t, err)
	return sqlite.NewRepositoryProvider(db)
}

func TestSQLiteRepositories(t *testing.T) {
	repotest.Run(t, newRepos)
}
