package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/db"
	"github.com/homefindhq/homefind/internal/errorz"
	"github.com/homefindhq/homefind/internal/listing"
)

type execFunc func(query string, params ...any) (sql.Result, error)
type queryFunc func(query string, params ...any) (*sql.Rows, error)

func insertListing(ef execFunc, l *listing.Listing) error {
	if l.ID == uuid.Nil {
		return fmt.Errorf("zero uuid provided: %w", errorz.ErrConstraintViolated)
	}

	imageURLs, err := json.Marshal(l.ImageURLs)
	if err != nil {
		return err
	}

	geo, err := json.Marshal(l.GeoLocation)
	if err != nil {
		return err
	}

	var q db.Query
	q.Unsafe(`INSERT INTO listings (id, name, location, type, bedrooms, bathrooms, furnished, parking, offer, regular_price, discounted_price, image_urls, geo_location, user_ref, created_at) VALUES (`)
	q.Params(
		l.ID, l.Name, l.Location, l.Type, l.Bedrooms, l.Bathrooms,
		l.Furnished, l.Parking, l.Offer, l.RegularPrice, l.DiscountedPrice,
		string(imageURLs), string(geo), l.UserRef, l.CreatedAt,
	)
	q.Unsafe(`)`)

	s, params := q.Get()

	_, err = ef(s, params...)
	if err != nil {
		return errorz.MapDBErr(err)
	}

	return nil
}

func selectListings(qf queryFunc, f *listing.Filter) ([]listing.Listing, error) {
	var q db.Query
	q.Unsafe(`SELECT id, name, location, type, bedrooms, bathrooms, furnished, parking, offer, regular_price, discounted_price, image_urls, geo_location, user_ref, created_at FROM listings WHERE 1=1 `)

	if len(f.IDs) > 0 {
		q.Unsafe(`AND id IN (`)
		q.Params(anySlice(f.IDs)...)
		q.Unsafe(`) `)
	}

	if len(f.Types) > 0 {
		q.Unsafe(`AND type IN (`)
		q.Params(anySlice(f.Types)...)
		q.Unsafe(`) `)
	}

	if len(f.UserRefs) > 0 {
		q.Unsafe(`AND user_ref IN (`)
		q.Params(anySlice(f.UserRefs)...)
		q.Unsafe(`) `)
	}

	if f.HasOffer != nil {
		q.Unsafe(`AND offer = `)
		q.Param(*f.HasOffer)
		q.Unsafe(` `)
	}

	if f.Latest > 0 {
		q.Unsafe(`ORDER BY created_at DESC LIMIT `)
		q.Param(f.Latest)
	} else {
		q.Unsafe(`ORDER BY created_at ASC`)
	}

	s, params := q.Get()

	rows, err := qf(s, params...)
	if err != nil {
		return nil, errorz.MapDBErr(err)
	}

	defer rows.Close()

	out := make([]listing.Listing, 0)
	for rows.Next() {
		var l listing.Listing
		var imageURLs, geo string

		err := rows.Scan(
			&l.ID, &l.Name, &l.Location, &l.Type, &l.Bedrooms, &l.Bathrooms,
			&l.Furnished, &l.Parking, &l.Offer, &l.RegularPrice, &l.DiscountedPrice,
			&imageURLs, &geo, &l.UserRef, &l.CreatedAt,
		)
		if err != nil {
			return nil, errorz.MapDBErr(err)
		}

		if err := json.Unmarshal([]byte(imageURLs), &l.ImageURLs); err != nil {
			return nil, fmt.Errorf("listing %s has invalid image urls: %w", l.ID, err)
		}

		if err := json.Unmarshal([]byte(geo), &l.GeoLocation); err != nil {
			return nil, fmt.Errorf("listing %s has invalid geo location: %w", l.ID, err)
		}

		out = append(out, l)
	}

	if err := rows.Err(); err != nil {
		return nil, errorz.MapDBErr(err)
	}

	return out, nil
}

func deleteListing(ef execFunc, id uuid.UUID) error {
	var q db.Query
	q.Unsafe(`DELETE FROM listings WHERE id = `)
	q.Param(id)

	s, params := q.Get()

	result, err := ef(s, params...)
	if err != nil {
		return errorz.MapDBErr(err)
	}

	rowCount, err := result.RowsAffected()
	if err != nil {
		return errorz.MapDBErr(err)
	}

	if rowCount == 0 {
		return fmt.Errorf("listing not found: %w", errorz.ErrNotFound)
	}

	return nil
}

func anySlice[T any](s []T) []any {
	out := make([]any, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	return out
}
