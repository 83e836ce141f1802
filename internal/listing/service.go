package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/errorz"
)

// LatestCount is how many listings the "latest listings" view returns.
const LatestCount = 5

// Service validates listing input and delegates persistence to a Store.
type Service struct {
	store Store

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store:   store,
		NowFunc: time.Now,
	}
}

// Create validates the input and persists a new listing.
func (s *Service) Create(ctx context.Context, n NewListing) (Listing, error) {
	if err := n.Validate(); err != nil {
		return Listing{}, err
	}

	l := Listing{
		ID:              uuid.New(),
		Name:            n.Name,
		Location:        n.Location,
		Type:            n.Type,
		Bedrooms:        n.Bedrooms,
		Bathrooms:       n.Bathrooms,
		Furnished:       n.Furnished,
		Parking:         n.Parking,
		Offer:           n.Offer,
		RegularPrice:    n.RegularPrice,
		DiscountedPrice: n.DiscountedPrice,
		ImageURLs:       n.ImageURLs,
		GeoLocation:     n.GeoLocation,
		UserRef:         n.UserRef,
		CreatedAt:       s.NowFunc(),
	}

	if err := s.store.CreateListing(ctx, &l); err != nil {
		return Listing{}, err
	}

	return l, nil
}

// ByID returns a single listing or errorz.ErrNotFound.
func (s *Service) ByID(ctx context.Context, id uuid.UUID) (Listing, error) {
	listings, err := s.store.FindListings(ctx, &Filter{
		IDs: []uuid.UUID{id},
	})
	if err != nil {
		return Listing{}, err
	}

	if len(listings) != 1 {
		return Listing{}, fmt.Errorf("listing %s: %w", id, errorz.ErrNotFound)
	}

	return listings[0], nil
}

// All returns every listing.
func (s *Service) All(ctx context.Context) ([]Listing, error) {
	return s.store.FindListings(ctx, &Filter{})
}

// ByCategory returns the listings of the given type.
func (s *Service) ByCategory(ctx context.Context, category string) ([]Listing, error) {
	return s.store.FindListings(ctx, &Filter{
		Types: []string{category},
	})
}

// WithOffer returns the listings that have an offer.
func (s *Service) WithOffer(ctx context.Context) ([]Listing, error) {
	hasOffer := true
	return s.store.FindListings(ctx, &Filter{
		HasOffer: &hasOffer,
	})
}

// Latest returns the most recently created listings, newest first.
func (s *Service) Latest(ctx context.Context) ([]Listing, error) {
	return s.store.FindListings(ctx, &Filter{
		Latest: LatestCount,
	})
}

// ByUserRef returns the listings owned by the given account.
func (s *Service) ByUserRef(ctx context.Context, userRef uuid.UUID) ([]Listing, error) {
	return s.store.FindListings(ctx, &Filter{
		UserRefs: []uuid.UUID{userRef},
	})
}

// Delete removes a listing, it returns errorz.ErrNotFound if no
// listing with the given id exists.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteListing(ctx, id)
}
