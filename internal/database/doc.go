// Package database provides SQLite storage for indexed file records.
//
// It maintains a single table of records keyed by absolute path, with the
// file name denormalized into its own indexed column so name-based searches
// stay fast on multi-million row indexes. All writes flow through batch
// transactions owned by one writer at a time; read queries may run
// concurrently with each other and see every batch committed before they
// began.
//
// The database uses WAL mode for improved concurrent read performance and
// includes automatic schema initialization.
package database
