//go:build !cgo_sqlite

package main

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

const sqliteDriver = "modernc.org/sqlite"

// initDB opens a results database with the pure-Go driver. Connection
// settings use modernc's _pragma DSN parameters.
func initDB(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite", dataSource+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
}
