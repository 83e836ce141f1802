package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/homefindhq/homefind/internal/auth"
	"github.com/homefindhq/homefind/internal/email"
	"github.com/homefindhq/homefind/internal/errorz"
)

// maxBodyBytes caps request bodies, listing payloads carry a handful of
// image URLs at most.
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into dst. Malformed bodies and
// field-level parse failures surface as errorz.InvalidInput, except for
// errors that already carry domain meaning (an invalid password must
// stay recognizable for the credentials error mapping).
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		// A too-short password must stay recognizable so it maps to an
		// invalid-credentials response instead of a generic 400.
		if errors.Is(err, auth.ErrInvalidPassword) {
			return err
		}

		if errors.Is(err, email.ErrInvalidEmail) {
			return errorz.InvalidInput{errorz.Keyed{Key: "email", Err: err}}
		}

		return errorz.InvalidInput{errorz.Keyed{Key: "body", Err: err}}
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	// Encoding errors at this point can't be reported to the client
	// anymore, the header is already written.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
