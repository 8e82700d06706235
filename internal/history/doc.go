// Package history persists a record of packaging runs in a SQLite database
// so operators can review what was packaged, where it went, and how it
// ended.
package history
