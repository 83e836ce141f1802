package web

import (
	"time"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/auth"
	"github.com/homefindhq/homefind/internal/email"
	"github.com/homefindhq/homefind/internal/identity"
	"github.com/homefindhq/homefind/internal/listing"
)

// The wire types below pin the JSON contract of the API. Domain types
// stay free of serialization concerns, everything is mapped here.

type signUpRequest struct {
	Name     string        `json:"name"`
	Email    email.Address `json:"email"`
	Password auth.Password `json:"password"`
}

type signInRequest struct {
	Email    email.Address `json:"email"`
	Password auth.Password `json:"password"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type identityResponse struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	UserRef  string        `json:"userRef"`
	Listings []listingJSON `json:"listings"`
}

func toIdentityResponse(id identity.Identity) identityResponse {
	return identityResponse{
		Name:     id.Name,
		Email:    string(id.Email),
		UserRef:  id.UserRef.String(),
		Listings: toListingsJSON(id.Listings),
	}
}

type newListingRequest struct {
	Name            string              `json:"name"`
	Location        string              `json:"location"`
	Type            string              `json:"type"`
	Bedrooms        int                 `json:"bedrooms"`
	Bathrooms       int                 `json:"bathrooms"`
	Furnished       bool                `json:"furnished"`
	Parking         bool                `json:"parking"`
	Offer           bool                `json:"offer"`
	RegularPrice    string              `json:"regularPrice"`
	DiscountedPrice string              `json:"discountedPrice"`
	ImageURLs       []string            `json:"imageUrls"`
	GeoLocation     listing.GeoLocation `json:"geoLocation"`
	UserRef         uuid.UUID           `json:"userRef"`
}

func (req newListingRequest) domain() listing.NewListing {
	return listing.NewListing{
		Name:            req.Name,
		Location:        req.Location,
		Type:            req.Type,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Furnished:       req.Furnished,
		Parking:         req.Parking,
		Offer:           req.Offer,
		RegularPrice:    req.RegularPrice,
		DiscountedPrice: req.DiscountedPrice,
		ImageURLs:       req.ImageURLs,
		GeoLocation:     req.GeoLocation,
		UserRef:         req.UserRef,
	}
}

type listingJSON struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Location        string              `json:"location"`
	Type            string              `json:"type"`
	Bedrooms        int                 `json:"bedrooms"`
	Bathrooms       int                 `json:"bathrooms"`
	Furnished       bool                `json:"furnished"`
	Parking         bool                `json:"parking"`
	Offer           bool                `json:"offer"`
	RegularPrice    string              `json:"regularPrice"`
	DiscountedPrice string              `json:"discountedPrice,omitempty"`
	ImageURLs       []string            `json:"imageUrls"`
	GeoLocation     listing.GeoLocation `json:"geoLocation"`
	UserRef         string              `json:"userRef"`
	Timestamp       time.Time           `json:"timestamp"`
}

func toListingJSON(l listing.Listing) listingJSON {
	return listingJSON{
		ID:              l.ID.String(),
		Name:            l.Name,
		Location:        l.Location,
		Type:            l.Type,
		Bedrooms:        l.Bedrooms,
		Bathrooms:       l.Bathrooms,
		Furnished:       l.Furnished,
		Parking:         l.Parking,
		Offer:           l.Offer,
		RegularPrice:    l.RegularPrice,
		DiscountedPrice: l.DiscountedPrice,
		ImageURLs:       l.ImageURLs,
		GeoLocation:     l.GeoLocation,
		UserRef:         l.UserRef.String(),
		Timestamp:       l.CreatedAt,
	}
}

func toListingsJSON(listings []listing.Listing) []listingJSON {
	out := make([]listingJSON, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingJSON(l))
	}
	return out
}
