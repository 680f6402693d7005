// Package sqlite provides a BlobStore backed by a single SQLite table,
// using the pure-Go modernc.org/sqlite driver.
//
// Every Put is a single upsert, so a block is either fully replaced or
// left untouched.
package sqlite
