// Package identity answers "who am I" queries: it turns a session token
// into the account it proves plus that account's listings.
package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/auth"
	"github.com/homefindhq/homefind/internal/auth/token"
	"github.com/homefindhq/homefind/internal/email"
	"github.com/homefindhq/homefind/internal/listing"
)

// Identity is a resolved user identity with their listings attached.
// The listings are aggregated at read time, there is no join at the
// storage layer.
type Identity struct {
	Name     string
	Email    email.Address
	UserRef  uuid.UUID
	Listings []listing.Listing
}

// TokenVerifier verifies a raw session token.
type TokenVerifier interface {
	Verify(raw string) (token.Claims, error)
}

// AccountGetter loads an account by id.
type AccountGetter interface {
	AccountByID(ctx context.Context, id uuid.UUID) (auth.Account, error)
}

// ListingFinder loads the listings owned by an account.
type ListingFinder interface {
	ByUserRef(ctx context.Context, userRef uuid.UUID) ([]listing.Listing, error)
}

// Resolver resolves session tokens to identities. Both carrier paths,
// the cookie and the token-in-body variant, converge here so they apply
// identical verification rules.
type Resolver struct {
	tokens   TokenVerifier
	accounts AccountGetter
	listings ListingFinder
}

func NewResolver(tokens TokenVerifier, accounts AccountGetter, listings ListingFinder) *Resolver {
	return &Resolver{
		tokens:   tokens,
		accounts: accounts,
		listings: listings,
	}
}

// Resolve verifies the raw token and loads the account it refers to,
// along with that account's listings.
//
// Token failures surface as the token package's error taxonomy. A valid
// token whose account no longer exists returns auth.ErrAccountNotFound,
// callers treat both as "unauthenticated" rather than crashing.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Identity, error) {
	claims, err := r.tokens.Verify(raw)
	if err != nil {
		return Identity{}, err
	}

	account, err := r.accounts.AccountByID(ctx, claims.UserRef)
	if err != nil {
		return Identity{}, err
	}

	listings, err := r.listings.ByUserRef(ctx, account.ID)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		Name:     account.Name,
		Email:    account.Email,
		UserRef:  account.ID,
		Listings: listings,
	}, nil
}
