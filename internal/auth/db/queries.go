package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/auth"
	"github.com/homefindhq/homefind/internal/db"
	"github.com/homefindhq/homefind/internal/email"
	"github.com/homefindhq/homefind/internal/errorz"
)

type execFunc func(query string, params ...any) (sql.Result, error)
type queryFunc func(query string, params ...any) (*sql.Rows, error)

func insertAccount(ef execFunc, a *auth.Account) error {
	if a.ID == uuid.Nil {
		return fmt.Errorf("zero uuid provided: %w", errorz.ErrConstraintViolated)
	}

	var q db.Query
	q.Unsafe(`INSERT INTO users (id, email, password_hash, name, created_at) VALUES (`)
	q.Params(a.ID, string(a.Email), a.PasswordHash.String(), a.Name, a.CreatedAt)
	q.Unsafe(`)`)

	s, params := q.Get()

	_, err := ef(s, params...)
	if err != nil {
		return errorz.MapDBErr(err)
	}

	return nil
}

func selectAccounts(qf queryFunc, f *auth.AccountFilter) ([]auth.Account, error) {
	var q db.Query
	q.Unsafe(`SELECT id, email, password_hash, name, created_at FROM users WHERE 1=1 `)

	if len(f.IDs) > 0 {
		q.Unsafe(`AND id IN (`)
		q.Params(anySlice(f.IDs)...)
		q.Unsafe(`) `)
	}

	if len(f.Emails) > 0 {
		q.Unsafe(`AND email IN (`)
		q.Params(anySlice(f.Emails)...)
		q.Unsafe(`) `)
	}

	q.Unsafe(`ORDER BY created_at ASC`)

	s, params := q.Get()

	rows, err := qf(s, params...)
	if err != nil {
		return nil, errorz.MapDBErr(err)
	}

	defer rows.Close()

	out := make([]auth.Account, 0)
	for rows.Next() {
		var a auth.Account
		var addr string

		err := rows.Scan(&a.ID, &addr, &a.PasswordHash, &a.Name, &a.CreatedAt)
		if err != nil {
			return nil, errorz.MapDBErr(err)
		}

		// Emails are stored normalized, no re-parsing needed.
		a.Email = email.Address(addr)

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, errorz.MapDBErr(err)
	}

	return out, nil
}

func anySlice[T any](s []T) []any {
	out := make([]any, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	return out
}
