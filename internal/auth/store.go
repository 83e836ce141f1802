package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/email"
)

// AccountFilter is used to filter accounts.
// Returned accounts must match all the provided fields.
// If a field is empty or nil, it's ignored.
type AccountFilter struct {
	IDs    []uuid.UUID
	Emails []email.Address
}

// Store provides access to the credential store.
type Store interface {
	BeginTx(ctx context.Context) (Tx, error)
	FindAccounts(ctx context.Context, filter *AccountFilter) ([]Account, error)
}

// Tx is a transaction. If an error occurs on any of the Create/Find
// methods, the transaction is considered to have failed and should be
// rolled back. Tx is not safe for concurrent use.
type Tx interface {
	Commit() error
	Rollback() error

	CreateAccount(a *Account) error
	FindAccounts(filter *AccountFilter) ([]Account, error)
}
