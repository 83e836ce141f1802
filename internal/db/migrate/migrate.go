package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

var (
	// ErrMismatch indicates the migrations that ran before don't line up
	// with the files available now.
	ErrMismatch = errors.New("migrations mismatch")
)

// Migration is a migration that was run.
type Migration struct {
	// Sequence is the position of the migration. Starts at 0.
	Sequence int
	Filename string
	Metadata Metadata
}

// Equal checks if two migrations are equal.
func (m Migration) Equal(other Migration) bool {
	return m.Sequence == other.Sequence &&
		m.Filename == other.Filename &&
		m.Metadata.AppVersion == other.Metadata.AppVersion &&
		m.Metadata.Timestamp.Equal(other.Metadata.Timestamp)
}

// Metadata records which app version ran a migration and when.
// If something goes wrong, this helps with debugging.
type Metadata struct {
	AppVersion string
	Timestamp  time.Time
}

const tableQuery = `CREATE TABLE IF NOT EXISTS migrations (
	sequence    INTEGER PRIMARY KEY,
	filename    TEXT NOT NULL,
	app_version TEXT NOT NULL,
	timestamp   TIMESTAMP NOT NULL
)
`

// RunFS runs the migrations from the provided fs.FS that have not run
// before. Only .sql files in the root of the FS are considered, ordered
// by filename. Everything happens in a single transaction, including
// the verification that previously ran migrations still match the
// files on disk.
//
// It returns the migrations that were run, an empty slice if none were.
func RunFS(ctx context.Context, db *sql.DB, fileSys fs.FS, meta Metadata) ([]Migration, error) {
	files, err := loadFiles(fileSys)
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	ran, err := run(tx, files, meta)
	if err != nil {
		rErr := tx.Rollback()
		if rErr != nil {
			err = errors.Join(err, rErr)
		}
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ran, nil
}

func run(tx *sql.Tx, files []file, meta Metadata) ([]Migration, error) {
	_, err := tx.Exec(tableQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	before, err := queryBefore(tx)
	if err != nil {
		return nil, err
	}

	if len(before) > len(files) {
		return nil, fmt.Errorf(
			"found %d existing migrations but only have %d files: %w",
			len(before), len(files), ErrMismatch,
		)
	}

	// Verify the migrations that ran before against the files we have.
	for i, b := range before {
		if i != b.Sequence {
			return nil, fmt.Errorf("migration sequence mismatch, wanted %d got %d: %w", i, b.Sequence, ErrMismatch)
		}

		if b.Filename != files[i].name {
			return nil, fmt.Errorf(
				"migration %d ran as %q, but file %d is now %q: %w",
				i, b.Filename, i, files[i].name, ErrMismatch,
			)
		}
	}

	ran := make([]Migration, 0, len(files)-len(before))
	for i := len(before); i < len(files); i++ {
		f := files[i]

		_, err := tx.Exec(f.content)
		if err != nil {
			return nil, fmt.Errorf("migration [%d] %q failed: %w", i, f.name, err)
		}

		_, err = tx.Exec(
			`INSERT INTO migrations (sequence, filename, app_version, timestamp) VALUES (?, ?, ?, ?)`,
			i, f.name, meta.AppVersion, meta.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to record migration [%d] %q: %w", i, f.name, err)
		}

		ran = append(ran, Migration{
			Sequence: i,
			Filename: f.name,
			Metadata: meta,
		})
	}

	return ran, nil
}

func queryBefore(tx *sql.Tx) ([]Migration, error) {
	rows, err := tx.Query(`SELECT sequence, filename, app_version, timestamp FROM migrations ORDER BY sequence`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	migrations := make([]Migration, 0)
	for rows.Next() {
		var m Migration
		err := rows.Scan(&m.Sequence, &m.Filename, &m.Metadata.AppVersion, &m.Metadata.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}

		migrations = append(migrations, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return migrations, nil
}

type file struct {
	name    string
	content string
}

func loadFiles(fileSys fs.FS) ([]file, error) {
	entries, err := fs.ReadDir(fileSys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	files := make([]file, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		content, err := fs.ReadFile(fileSys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %q: %w", entry.Name(), err)
		}

		files = append(files, file{
			name:    entry.Name(),
			content: string(content),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].name < files[j].name
	})

	return files, nil
}
