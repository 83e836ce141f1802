package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/auth/token"
	"github.com/homefindhq/homefind/internal/email"
	"github.com/homefindhq/homefind/internal/errorz"
	"github.com/homefindhq/homefind/internal/krypto"
)

var (
	// ErrDuplicateAccount indicates an account with the same email
	// already exists.
	ErrDuplicateAccount = errors.New("duplicate account")
	// ErrAccountNotFound indicates no account exists for the given
	// email or id.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials indicates the password does not match the
	// stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Registration is the input for SignUp.
// Email addresses are case-normalized by email.ParseAddress before they
// get here.
type Registration struct {
	Name     string
	Email    email.Address
	Password Password
}

// Credentials is the input for SignIn.
type Credentials struct {
	Email    email.Address
	Password Password
}

// Session is the result of a successful SignUp or SignIn: the account
// and a signed token proving its identity.
type Session struct {
	Account Account
	Token   string
}

// ServiceConfig is the configuration for the Service.
type ServiceConfig struct {
	// HashCost is the bcrypt work factor used for new password hashes.
	// Defaults to krypto.DefaultHashCost when zero.
	HashCost int
}

// Service provides the main rules for authentication.
type Service struct {
	store  Store
	tokens *token.Issuer
	cfg    ServiceConfig

	// comparisonHash is used to compare passwords when no account was
	// found, so the "unknown email" and "wrong password" paths take
	// roughly the same time.
	comparisonHash krypto.BcryptHash

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

func NewService(s Store, tokens *token.Issuer, cfg ServiceConfig) (*Service, error) {
	if cfg.HashCost == 0 {
		cfg.HashCost = krypto.DefaultHashCost
	}

	random := make([]byte, 32)
	if _, err := rand.Read(random); err != nil {
		return nil, err
	}

	hash, err := krypto.HashBcrypt(random, cfg.HashCost)
	if err != nil {
		return nil, err
	}

	return &Service{
		store:          s,
		tokens:         tokens,
		cfg:            cfg,
		comparisonHash: hash,
		NowFunc:        time.Now,
	}, nil
}

// SignUp registers a new account and issues a session token for it.
//
// The duplicate check runs inside the same transaction as the insert,
// but the authoritative signal is the unique index on the email column:
// if a concurrent signup wins the race, the constraint violation is
// mapped to ErrDuplicateAccount as well.
func (s *Service) SignUp(ctx context.Context, reg Registration) (Session, error) {
	if reg.Name == "" {
		return Session{}, errorz.InvalidInput{
			errorz.Keyed{Key: "name", Err: errors.New("must not be empty")},
		}
	}

	pwdHash, err := reg.Password.Hash(s.cfg.HashCost)
	if err != nil {
		return Session{}, err
	}

	account := Account{
		ID:           uuid.New(),
		Email:        reg.Email,
		PasswordHash: pwdHash,
		Name:         reg.Name,
		CreatedAt:    s.NowFunc(),
	}

	err = s.inTx(ctx, func(tx Tx) error {
		existing, txErr := tx.FindAccounts(&AccountFilter{
			Emails: []email.Address{reg.Email},
		})
		if txErr != nil {
			return txErr
		}

		if len(existing) > 0 {
			return ErrDuplicateAccount
		}

		return tx.CreateAccount(&account)
	})
	if err != nil {
		if errors.Is(err, errorz.ErrConstraintViolated) {
			return Session{}, ErrDuplicateAccount
		}
		return Session{}, err
	}

	tok, err := s.tokens.Issue(token.Claims{
		UserRef: account.ID,
		Email:   account.Email,
		Name:    account.Name,
	})
	if err != nil {
		return Session{}, err
	}

	return Session{Account: account, Token: tok}, nil
}

// SignIn verifies the provided credentials and issues a session token.
//
// An unknown email returns ErrAccountNotFound, a wrong password returns
// ErrInvalidCredentials. The response-level distinction mirrors the
// public API contract, but both paths still do a hash comparison so
// their timing doesn't give away which one occurred.
func (s *Service) SignIn(ctx context.Context, c Credentials) (Session, error) {
	accounts, err := s.store.FindAccounts(ctx, &AccountFilter{
		Emails: []email.Address{c.Email},
	})
	if err != nil {
		return Session{}, err
	}

	if len(accounts) != 1 {
		_ = c.Password.Match(s.comparisonHash)
		return Session{}, ErrAccountNotFound
	}

	account := accounts[0]

	if !c.Password.Match(account.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}

	// Signin tokens carry no name claim, matching the signup/signin
	// asymmetry of the public API.
	tok, err := s.tokens.Issue(token.Claims{
		UserRef: account.ID,
		Email:   account.Email,
	})
	if err != nil {
		return Session{}, err
	}

	return Session{Account: account, Token: tok}, nil
}

// AccountByID returns the account with the given id or
// ErrAccountNotFound.
func (s *Service) AccountByID(ctx context.Context, id uuid.UUID) (Account, error) {
	accounts, err := s.store.FindAccounts(ctx, &AccountFilter{
		IDs: []uuid.UUID{id},
	})
	if err != nil {
		return Account{}, err
	}

	if len(accounts) != 1 {
		return Account{}, ErrAccountNotFound
	}

	return accounts[0], nil
}

func (s *Service) inTx(ctx context.Context, f func(tx Tx) error) error {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return err
	}

	err = f(tx)
	if err != nil {
		rBackErr := tx.Rollback()
		if rBackErr != nil {
			err = errors.Join(err, rBackErr)
		}
		return err
	}

	return tx.Commit()
}
