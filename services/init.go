package services

import (
	"database/sql"

	"railmate/config"
)

var cfg *config.Config

// Init wires the loaded configuration into the service layer.
func Init(c *config.Config) {
	cfg = c
}

// queryable is satisfied by both *sql.DB and *sql.Tx so the same loaders
// work inside and outside transactions.
type queryable interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}
