// Package web exposes the marketplace over a JSON HTTP API.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/homefindhq/homefind/internal/auth"
	"github.com/homefindhq/homefind/internal/auth/token"
	"github.com/homefindhq/homefind/internal/errorz"
	"github.com/homefindhq/homefind/internal/identity"
	"github.com/homefindhq/homefind/internal/listing"
)

// ServerDeps are the dependencies for the server.
type ServerDeps struct {
	Logger   *slog.Logger
	Auth     *auth.Service
	Listings *listing.Service
	Resolver *identity.Resolver
}

// ServerConfig is the configuration for the server.
type ServerConfig struct {
	// SecureCookie marks the session cookie as https-only. Disabled in
	// local development.
	SecureCookie bool
}

type Server struct {
	deps *ServerDeps
	cfg  ServerConfig
	mux  *http.ServeMux
}

func NewServer(deps *ServerDeps, cfg ServerConfig) *Server {
	s := &Server{
		deps: deps,
		cfg:  cfg,
		mux:  http.NewServeMux(),
	}

	// Account endpoints.
	s.mux.HandleFunc("POST /api/user/signup", s.signUp)
	s.mux.HandleFunc("POST /api/user/signin", s.signIn)

	// Identity endpoints. Both resolve the same way, they only differ
	// in how the token reaches the server.
	s.mux.HandleFunc("GET /api/user/signup/getdetails", s.detailsFromCookie)
	s.mux.HandleFunc("POST /api/user/getdetails", s.detailsFromToken)

	// Listing endpoints.
	s.mux.HandleFunc("GET /api/listings", s.allListings)
	s.mux.HandleFunc("POST /api/listings", s.createListing)
	s.mux.HandleFunc("GET /api/listings/category/{categoryName}", s.listingsByCategory)
	s.mux.HandleFunc("GET /api/listings/{listingID}", s.listingByID)
	s.mux.HandleFunc("DELETE /api/listings/{listingID}", s.deleteListing)
	s.mux.HandleFunc("GET /api/offer-listings", s.offerListings)
	s.mux.HandleFunc("GET /api/latest-listings", s.latestListings)
	s.mux.HandleFunc("GET /api/user/{userID}/listings", s.listingsByUser)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleError writes the response for a failed request. Known failures
// map to their status code, anything else becomes a generic internal
// error so store or driver details never reach clients.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidInput errorz.InvalidInput
	switch {
	case errors.Is(err, auth.ErrDuplicateAccount):
		writeError(w, http.StatusBadRequest, "account already exists")
	case errors.Is(err, auth.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, token.ErrMalformedToken),
		errors.Is(err, token.ErrBadSignature),
		errors.Is(err, token.ErrTokenExpired):
		// The taxonomy matters for logs, not for clients: all three are
		// just "unauthenticated" on the wire.
		s.deps.Logger.Info("rejected token", "url", r.URL.String(), "reason", err)
		writeError(w, http.StatusUnauthorized, "unauthenticated")
	case errors.Is(err, errorz.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.As(err, &invalidInput):
		writeError(w, http.StatusBadRequest, "invalid input: "+keyedFields(invalidInput))
	default:
		s.deps.Logger.Error("internal server error", "url", r.URL.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// keyedFields lists the field names of an InvalidInput error, so
// clients learn which fields to fix without seeing internals.
func keyedFields(invalid errorz.InvalidInput) string {
	out := ""
	for _, err := range invalid {
		var keyed errorz.Keyed
		if !errors.As(err, &keyed) {
			continue
		}

		if out != "" {
			out += ", "
		}
		out += keyed.Key
	}

	if out == "" {
		return "malformed request body"
	}

	return out
}
