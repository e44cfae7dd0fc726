//go:build cgo_sqlite

package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteDriver = "mattn/go-sqlite3"

// initDB opens a results database with the cgo driver. Connection settings
// use go-sqlite3's DSN parameters.
func initDB(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite3", dataSource+"?_journal_mode=WAL&_busy_timeout=5000")
}
