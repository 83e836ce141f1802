package web

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/auth"
	"github.com/homefindhq/homefind/internal/listing"
)

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	session, err := s.deps.Auth.SignUp(r.Context(), auth.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	// Signup is the only endpoint that sets the cookie carrier, signin
	// leaves storing the token to the client.
	s.attachTokenCookie(w, session.Token)
	writeJSON(w, http.StatusCreated, tokenResponse{Token: session.Token})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	session, err := s.deps.Auth.SignIn(r.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: session.Token})
}

func (s *Server) detailsFromCookie(w http.ResponseWriter, r *http.Request) {
	raw, ok := tokenFromCookie(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	s.resolveIdentity(w, r, raw)
}

func (s *Server) detailsFromToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.resolveIdentity(w, r, req.Token)
}

func (s *Server) resolveIdentity(w http.ResponseWriter, r *http.Request, raw string) {
	id, err := s.deps.Resolver.Resolve(r.Context(), raw)
	if err != nil {
		// A valid token for a since-deleted account is an auth failure,
		// not a lookup failure.
		if errors.Is(err, auth.ErrAccountNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toIdentityResponse(id))
}

func (s *Server) createListing(w http.ResponseWriter, r *http.Request) {
	var req newListingRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	created, err := s.deps.Listings.Create(r.Context(), req.domain())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toListingJSON(created))
}

func (s *Server) allListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.deps.Listings.All(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingsJSON(listings))
}

func (s *Server) listingByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("listingID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	l, err := s.deps.Listings.ByID(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingJSON(l))
}

func (s *Server) listingsByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("categoryName")
	if category != listing.TypeSell && category != listing.TypeRent {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	listings, err := s.deps.Listings.ByCategory(r.Context(), category)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingsJSON(listings))
}

func (s *Server) offerListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.deps.Listings.WithOffer(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingsJSON(listings))
}

func (s *Server) latestListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.deps.Listings.Latest(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingsJSON(listings))
}

func (s *Server) listingsByUser(w http.ResponseWriter, r *http.Request) {
	userRef, err := uuid.Parse(r.PathValue("userID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	listings, err := s.deps.Listings.ByUserRef(r.Context(), userRef)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingsJSON(listings))
}

func (s *Server) deleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("listingID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := s.deps.Listings.Delete(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
