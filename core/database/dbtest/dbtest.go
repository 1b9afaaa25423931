// Package dbtest provides in-memory SQLite stores carrying the pokemon schema for tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"pokemon-service/core/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// Schema mirrors the provisioned dataset. It carries no unique constraints
// because the raw seed data contains duplicates.
const Schema = `
CREATE TABLE types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT
);
CREATE TABLE abilities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT
);
CREATE TABLE pokemon (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	type1_id INTEGER NOT NULL REFERENCES types(id),
	type2_id INTEGER REFERENCES types(id)
);
CREATE TABLE trainers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT
);
CREATE TABLE trainer_pokemon_abilities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trainer_id INTEGER REFERENCES trainers(id),
	pokemon_id INTEGER REFERENCES pokemon(id),
	ability_id INTEGER REFERENCES abilities(id)
);
`

// NewStore opens a shared-cache in-memory database named after the test,
// creates the schema and closes the store when the test ends.
func NewStore(t *testing.T) *database.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	for _, stmt := range strings.Split(Schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, db.Exec(stmt).Error)
	}

	store := database.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Exec runs raw statements against the store, failing the test on error.
func Exec(t *testing.T, store *database.Store, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		require.NoError(t, store.DB().Exec(stmt).Error, stmt)
	}
}

// Names returns the name column of a table ordered by id, NULL as "<nil>".
func Names(t *testing.T, store *database.Store, table string) []string {
	t.Helper()
	var names []*string
	require.NoError(t, store.DB().Table(table).Order("id").Pluck("name", &names).Error)

	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == nil {
			out = append(out, "<nil>")
			continue
		}
		out = append(out, *n)
	}
	return out
}

// Count returns the number of rows in a table.
func Count(t *testing.T, store *database.Store, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, store.DB().Table(table).Count(&n).Error)
	return n
}
