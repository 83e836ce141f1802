package listing

import (
	"context"

	"github.com/google/uuid"
)

// Filter is used to filter listings.
// Returned listings must match all the provided fields.
// If a field is empty or nil, it's ignored.
type Filter struct {
	IDs      []uuid.UUID
	Types    []string
	UserRefs []uuid.UUID
	HasOffer *bool

	// Latest limits the result to the N most recently created listings
	// and orders them newest first. Zero means no limit, ordered oldest
	// first.
	Latest int
}

// Store provides access to the listing store. Listing operations are
// single statements, so unlike the credential store there is no
// transaction interface.
type Store interface {
	CreateListing(ctx context.Context, l *Listing) error
	FindListings(ctx context.Context, filter *Filter) ([]Listing, error)

	// DeleteListing removes a listing, it returns errorz.ErrNotFound
	// if no listing with the given id exists.
	DeleteListing(ctx context.Context, id uuid.UUID) error
}
