package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// Both option sets use WAL mode so reads and writes don't block each
	// other, enforce foreign keys and wait up to 5 seconds for a lock.
	// The write options additionally use immediate transactions to
	// prevent locking issues between concurrent writers.
	writeOptions = "?mode=rwc&_foreign_keys=on&_journal_mode=wal&_busy_timeout=5000&_txlock=immediate"
	readOptions  = "?mode=ro&_foreign_keys=on&_journal_mode=wal&_busy_timeout=5000"
)

// OpenSQLite opens a pool of SQLite connections. Different settings are
// appropriate for reading and writing, so this function needs to know
// what the sql.DB will be used for.
//
// See this comment for more information:
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995
func OpenSQLite(dbFile string, write bool) (*sql.DB, error) {
	optsPostfix := readOptions
	if write {
		optsPostfix = writeOptions
	}

	// The file: prefix makes sqlite treat the name as an URI, without it
	// the mode parameter is silently ignored.
	db, err := sql.Open("sqlite3", "file:"+dbFile+optsPostfix)
	if err != nil {
		return nil, err
	}

	if write {
		// SQLite supports a single writer, use one long-lived connection
		// for writing.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	return db, nil
}
