// Package persistence provides durable key-value storage for the enrollment store.
// Values are opaque blobs replaced as a whole on every write. SQLiteStore keeps
// them in a single table of a SQLite file with WAL mode, MemoryStore keeps them
// in a map and is used for tests and ephemeral runs.
package persistence
