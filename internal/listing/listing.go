// Package listing contains the property listings of the marketplace.
//
// Listings reference their owning account by UserRef, but there is no
// enforced relation: deleting an account leaves its listings behind and
// that is accepted behavior.
package listing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/errorz"
)

// Listing types as they appear in category URLs.
const (
	TypeSell = "sell"
	TypeRent = "rent"
)

// GeoLocation is a WGS84 coordinate pair.
type GeoLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing is a property listing.
type Listing struct {
	ID              uuid.UUID
	Name            string
	Location        string
	Type            string
	Bedrooms        int
	Bathrooms       int
	Furnished       bool
	Parking         bool
	Offer           bool
	RegularPrice    string
	DiscountedPrice string
	ImageURLs       []string
	GeoLocation     GeoLocation
	UserRef         uuid.UUID
	CreatedAt       time.Time
}

// NewListing is the input for creating a listing. It is an explicit
// allow-list: request payloads are decoded into exactly these fields
// and nothing else ends up in a stored record.
type NewListing struct {
	Name            string
	Location        string
	Type            string
	Bedrooms        int
	Bathrooms       int
	Furnished       bool
	Parking         bool
	Offer           bool
	RegularPrice    string
	DiscountedPrice string
	ImageURLs       []string
	GeoLocation     GeoLocation
	UserRef         uuid.UUID
}

// Validate checks the input and returns an errorz.InvalidInput
// describing every violated field.
func (n NewListing) Validate() error {
	var invalid errorz.InvalidInput

	field := func(key, msg string) {
		invalid = append(invalid, errorz.Keyed{Key: key, Err: errors.New(msg)})
	}

	if n.Name == "" {
		field("name", "must not be empty")
	}

	if n.Location == "" {
		field("location", "must not be empty")
	}

	if n.Type != TypeSell && n.Type != TypeRent {
		field("type", "must be sell or rent")
	}

	if n.Bedrooms < 1 {
		field("bedrooms", "must be at least 1")
	}

	if n.Bathrooms < 1 {
		field("bathrooms", "must be at least 1")
	}

	if n.RegularPrice == "" {
		field("regularPrice", "must not be empty")
	}

	if n.Offer && n.DiscountedPrice == "" {
		field("discountedPrice", "required when offer is set")
	}

	if len(n.ImageURLs) == 0 {
		field("imageUrls", "must contain at least one url")
	}

	if n.UserRef == uuid.Nil {
		field("userRef", "must not be empty")
	}

	if len(invalid) > 0 {
		return invalid
	}

	return nil
}
