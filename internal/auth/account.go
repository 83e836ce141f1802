package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/email"
	"github.com/homefindhq/homefind/internal/krypto"
)

// Account contains the stored identity of a user.
//
// Accounts are created by the signup flow and never modified afterwards,
// the credential store is their only owner.
type Account struct {
	ID           uuid.UUID
	Email        email.Address
	PasswordHash krypto.BcryptHash
	Name         string
	CreatedAt    time.Time
}
