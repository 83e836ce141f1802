// Package token issues and verifies the signed session tokens that
// prove a user's identity without any server-side session state.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/homefindhq/homefind/internal/email"
	"github.com/homefindhq/homefind/internal/krypto"
)

// DefaultExpiry is the lifetime of an issued token. There is no
// revocation, a token stays valid until it expires.
const DefaultExpiry = time.Hour

var (
	// ErrNoSecret indicates the issuer was constructed without a signing
	// secret. This is a configuration error, the process should not start.
	ErrNoSecret = errors.New("no signing secret configured")

	// ErrMalformedToken indicates a token that is structurally invalid.
	ErrMalformedToken = errors.New("malformed token")
	// ErrBadSignature indicates a token that was tampered with or signed
	// with a different key.
	ErrBadSignature = errors.New("bad token signature")
	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the payload encoded in a session token.
type Claims struct {
	UserRef uuid.UUID
	Email   email.Address
	Name    string
}

// jwtClaims is the wire representation of Claims.
type jwtClaims struct {
	jwt.RegisteredClaims
	UserRef string `json:"userRef"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
}

// Issuer creates and verifies signed session tokens. The signing secret
// is process-wide configuration, loaded once at startup.
//
// Issuer is safe for concurrent use.
type Issuer struct {
	secret krypto.Secret
	expiry time.Duration

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

// NewIssuer creates an Issuer signing with the provided secret. Tokens
// expire after expiry. It fails fast if the secret is missing, callers
// must not fall back to an unsigned or default-key mode.
func NewIssuer(secret krypto.Secret, expiry time.Duration) (*Issuer, error) {
	if secret.IsZero() {
		return nil, ErrNoSecret
	}

	if expiry <= 0 {
		return nil, fmt.Errorf("token expiry must be positive, got %s", expiry)
	}

	return &Issuer{
		secret:  secret,
		expiry:  expiry,
		NowFunc: time.Now,
	}, nil
}

// Issue creates a signed token embedding the provided claims plus the
// issue and expiry timestamps.
func (i *Issuer) Issue(c Claims) (string, error) {
	now := i.NowFunc()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
		UserRef: c.UserRef.String(),
		Email:   string(c.Email),
		Name:    c.Name,
	})

	return tok.SignedString(i.secret.SecretValue())
}

// Verify checks the signature and expiry of a raw token and returns the
// embedded claims. Failures are distinguished as ErrMalformedToken,
// ErrBadSignature or ErrTokenExpired. All three mean "unauthenticated"
// to callers, the distinction exists for logging and tests.
//
// On any failure no claims are returned, not even partially decoded ones.
func (i *Issuer) Verify(raw string) (Claims, error) {
	var wire jwtClaims

	_, err := jwt.ParseWithClaims(raw, &wire, func(t *jwt.Token) (any, error) {
		return i.secret.SecretValue(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time {
			return i.NowFunc()
		}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}

	userRef, err := uuid.Parse(wire.UserRef)
	if err != nil {
		return Claims{}, ErrMalformedToken
	}

	return Claims{
		UserRef: userRef,
		Email:   email.Address(wire.Email),
		Name:    wire.Name,
	}, nil
}
