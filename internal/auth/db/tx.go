package db

import (
	"database/sql"

	"github.com/homefindhq/homefind/internal/auth"
)

type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// CreateAccount creates an account in the database.
// It returns errorz.ErrConstraintViolated if an account with the same
// email already exists.
func (t *Tx) CreateAccount(a *auth.Account) error {
	return insertAccount(t.tx.Exec, a)
}

// FindAccounts queries for accounts based on the provided filter.
// It returns an empty slice if no accounts are found.
func (t *Tx) FindAccounts(filter *auth.AccountFilter) ([]auth.Account, error) {
	return selectAccounts(t.tx.Query, filter)
}
