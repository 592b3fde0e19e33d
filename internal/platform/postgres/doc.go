// Package postgres provides the PostgreSQL implementation of the storage
// interfaces defined in the internal/store package. It handles query
// execution, mapping between rows and domain entities, and translation of
// PostgreSQL errors into store errors.
package postgres
