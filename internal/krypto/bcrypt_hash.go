package krypto

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinHashCost and MaxHashCost bound the configurable bcrypt work
	// factor. DefaultHashCost equals 2^10 hashing rounds.
	MinHashCost     = bcrypt.MinCost
	MaxHashCost     = bcrypt.MaxCost
	DefaultHashCost = bcrypt.DefaultCost
)

var ErrInvalidBcryptHash = errors.New("invalid bcrypt hash")

// BcryptHash is a bcrypt hash in its standard encoded form:
//
//	$2a$10$<22 char salt><31 char checksum>
//
// The salt is generated per hashing call, so two hashes of the same
// input differ while both still match that input.
type BcryptHash struct {
	encoded []byte
}

// HashBcrypt hashes data using bcrypt with the provided cost.
// It errors if the cost is out of range or if the underlying
// primitive fails, both are treated as unexpected by callers.
func HashBcrypt(data []byte, cost int) (BcryptHash, error) {
	if cost < MinHashCost || cost > MaxHashCost {
		return BcryptHash{}, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, MinHashCost, MaxHashCost)
	}

	enc, err := bcrypt.GenerateFromPassword(data, cost)
	if err != nil {
		return BcryptHash{}, err
	}

	return BcryptHash{encoded: enc}, nil
}

// ParseBcryptHash parses a hash from its encoded form.
func ParseBcryptHash(raw string) (BcryptHash, error) {
	// bcrypt.Cost validates the version prefix and cost segment.
	if _, err := bcrypt.Cost([]byte(raw)); err != nil {
		return BcryptHash{}, ErrInvalidBcryptHash
	}

	return BcryptHash{encoded: []byte(raw)}, nil
}

// MatchBytes reports whether data is the input that produced this hash.
// A non-matching input is a normal false, never an error.
func (h BcryptHash) MatchBytes(data []byte) bool {
	return bcrypt.CompareHashAndPassword(h.encoded, data) == nil
}

// Cost returns the work factor the hash was created with.
func (h BcryptHash) Cost() (int, error) {
	return bcrypt.Cost(h.encoded)
}

// String returns the encoded form. Unlike plaintext secrets, encoded
// hashes are meant to be persisted, so this is not redacted.
func (h BcryptHash) String() string {
	return string(h.encoded)
}

func (h BcryptHash) MarshalText() ([]byte, error) {
	return []byte(h.encoded), nil
}

func (h *BcryptHash) UnmarshalText(text []byte) error {
	parsed, err := ParseBcryptHash(string(text))
	if err != nil {
		return err
	}

	*h = parsed

	return nil
}

// Scan implements sql.Scanner so hashes can be read directly from
// database rows.
func (h *BcryptHash) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return h.UnmarshalText([]byte(v))
	case []byte:
		return h.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into BcryptHash: %w", src, ErrInvalidBcryptHash)
	}
}

// Value implements driver.Valuer.
func (h BcryptHash) Value() (driver.Value, error) {
	return h.String(), nil
}
