// Package storage bootstraps the client's local SQLite database.
//
// InitDatabase opens the database with the pure-Go modernc.org/sqlite driver,
// enables WAL journaling for file databases and applies the goose migrations
// embedded in package migrations. OpenPreferences additionally wraps the
// handle in a preferences.SQLiteRepository, which is what the session store
// consumes.
package storage
