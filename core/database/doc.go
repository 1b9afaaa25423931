// Package database is the store adapter for the pokemon dataset.
//
// It wraps GORM and configures either a SQLite file (the default, matching
// the provisioned dataset) or a MySQL server from the application's configuration.
//
// # Connect
//
// Connect opens the store and pings it. It never hands raw driver errors to
// callers: a missing SQLite file, an unreachable server or an unsupported
// driver all surface as *ConnectionError.
//
// # Scoped connections
//
// Store.Conn and Store.Tx lend a connection (or a transaction) to a callback
// and release it on every exit path. Failing to acquire the connection is a
// *ConnectionError; errors from the callback are returned untouched so that
// feature packages can classify them.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for SQLite and MySQL. The integrity
// feature uses it to compare the live schema with the GORM models.
//
// # Usage
//
//	store, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	defer store.Close()
//
//	err = store.Tx(ctx, func(tx *gorm.DB) error {
//	    return tx.Exec("DELETE FROM abilities WHERE name = ?", "Remove this ability").Error
//	})
package database
