package identity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/auth"
	"github.com/homefindhq/homefind/internal/auth/token"
	"github.com/homefindhq/homefind/internal/errorz/testerr"
	"github.com/homefindhq/homefind/internal/identity"
	"github.com/homefindhq/homefind/internal/krypto"
	"github.com/homefindhq/homefind/internal/listing"
)

type fakeAccounts struct {
	accounts map[uuid.UUID]auth.Account
	err      error
}

func (f *fakeAccounts) AccountByID(_ context.Context, id uuid.UUID) (auth.Account, error) {
	if f.err != nil {
		return auth.Account{}, f.err
	}

	a, ok := f.accounts[id]
	if !ok {
		return auth.Account{}, auth.ErrAccountNotFound
	}

	return a, nil
}

type fakeListings struct {
	byOwner map[uuid.UUID][]listing.Listing
	err     error
}

func (f *fakeListings) ByUserRef(_ context.Context, userRef uuid.UUID) ([]listing.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.byOwner[userRef], nil
}

type resolverTest struct {
	resolver *identity.Resolver
	tokens   *token.Issuer
	accounts *fakeAccounts
	listings *fakeListings
	account  auth.Account
}

func newResolverTest(t *testing.T) *resolverTest {
	t.Helper()

	tokens, err := token.NewIssuer(krypto.NewSecret("test-signing-secret"), time.Hour)
	if err != nil {
		t.Fatalf("failed to create token issuer: %v", err)
	}

	account := auth.Account{
		ID:    uuid.New(),
		Email: "info@example.com",
		Name:  "Test User",
	}

	accounts := &fakeAccounts{
		accounts: map[uuid.UUID]auth.Account{account.ID: account},
	}
	listings := &fakeListings{
		byOwner: map[uuid.UUID][]listing.Listing{},
	}

	return &resolverTest{
		resolver: identity.NewResolver(tokens, accounts, listings),
		tokens:   tokens,
		accounts: accounts,
		listings: listings,
		account:  account,
	}
}

func (rt *resolverTest) issue(t *testing.T) string {
	t.Helper()

	raw, err := rt.tokens.Issue(token.Claims{
		UserRef: rt.account.ID,
		Email:   rt.account.Email,
		Name:    rt.account.Name,
	})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	return raw
}

func Test_Resolver_Resolve(t *testing.T) {
	t.Run("ok, resolve with listings", func(t *testing.T) {
		rt := newResolverTest(t)

		owned := []listing.Listing{
			{ID: uuid.New(), Name: "First", UserRef: rt.account.ID},
			{ID: uuid.New(), Name: "Second", UserRef: rt.account.ID},
		}
		rt.listings.byOwner[rt.account.ID] = owned

		id, err := rt.resolver.Resolve(context.Background(), rt.issue(t))
		if err != nil {
			t.Fatalf("failed to resolve: %v", err)
		}

		if id.UserRef != rt.account.ID || id.Email != rt.account.Email || id.Name != rt.account.Name {
			t.Errorf("got identity %+v, want account %+v", id, rt.account)
		}

		if len(id.Listings) != len(owned) {
			t.Errorf("got %d listings, want %d", len(id.Listings), len(owned))
		}
	})

	t.Run("ok, resolve without listings", func(t *testing.T) {
		rt := newResolverTest(t)

		id, err := rt.resolver.Resolve(context.Background(), rt.issue(t))
		if err != nil {
			t.Fatalf("failed to resolve: %v", err)
		}

		if len(id.Listings) != 0 {
			t.Errorf("got %d listings, want 0", len(id.Listings))
		}
	})

	t.Run("fail, garbage token", func(t *testing.T) {
		rt := newResolverTest(t)

		_, err := rt.resolver.Resolve(context.Background(), "not-a-token")
		if !errors.Is(err, token.ErrMalformedToken) {
			t.Fatalf("got error %v, want %v", err, token.ErrMalformedToken)
		}
	})

	t.Run("fail, token for deleted account", func(t *testing.T) {
		rt := newResolverTest(t)

		raw := rt.issue(t)
		delete(rt.accounts.accounts, rt.account.ID)

		_, err := rt.resolver.Resolve(context.Background(), raw)
		if !errors.Is(err, auth.ErrAccountNotFound) {
			t.Fatalf("got error %v, want %v", err, auth.ErrAccountNotFound)
		}
	})

	t.Run("fail, listing lookup fails", func(t *testing.T) {
		rt := newResolverTest(t)
		rt.listings.err = testerr.Err

		_, err := rt.resolver.Resolve(context.Background(), rt.issue(t))
		if !errors.Is(err, testerr.Err) {
			t.Fatalf("got error %v, want %v", err, testerr.Err)
		}
	})
}
