// Package db implements the listing store on top of SQLite.
package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/listing"
)

// Store is responsible for persisting listings.
type Store struct {
	db *sql.DB
}

// New creates a new Store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateListing creates a listing in the database.
func (s *Store) CreateListing(ctx context.Context, l *listing.Listing) error {
	return insertListing(func(query string, params ...any) (sql.Result, error) {
		return s.db.ExecContext(ctx, query, params...)
	}, l)
}

// FindListings queries for listings based on the provided filter.
// It returns an empty slice if no listings are found.
func (s *Store) FindListings(ctx context.Context, filter *listing.Filter) ([]listing.Listing, error) {
	return selectListings(func(query string, params ...any) (*sql.Rows, error) {
		return s.db.QueryContext(ctx, query, params...)
	}, filter)
}

// DeleteListing removes a listing from the database.
// It returns errorz.ErrNotFound if no listing with the given id exists.
func (s *Store) DeleteListing(ctx context.Context, id uuid.UUID) error {
	return deleteListing(func(query string, params ...any) (sql.Result, error) {
		return s.db.ExecContext(ctx, query, params...)
	}, id)
}
