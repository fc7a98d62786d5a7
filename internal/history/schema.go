// Package history persists run results into a local DuckDB database so
// past runs can be listed and compared.
package history

import (
	"database/sql"
	_ "embed"
	"errors"
)

// schemaDDL holds the DuckDB schema definition.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL used for initializing the history
// database.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("history: db is nil")
	}
	_, err := db.Exec(schemaDDL)
	return err
}
