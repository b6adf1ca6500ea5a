// Package postgres contains PostgreSQL implementations of the store
// interfaces, backed by the pgx driver through database/sql.
package postgres
