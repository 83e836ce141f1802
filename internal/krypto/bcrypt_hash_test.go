package krypto_test

import (
	"errors"
	"testing"

	"github.com/homefindhq/homefind/internal/krypto"
)

// knownHash is "secret" hashed with cost 10. Generated once so the
// tests don't depend on hashing being deterministic (it isn't, the
// salt differs per call).
const knownHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye1VdLSrlEVA36lYVKN7rheMS1HJqzogW"

func Test_HashBcrypt_MatchBytes(t *testing.T) {
	t.Run("ok, hash matches own input", func(t *testing.T) {
		hash, err := krypto.HashBcrypt([]byte("secret"), krypto.MinHashCost)
		if err != nil {
			t.Fatalf("failed to hash: %v", err)
		}

		if !hash.MatchBytes([]byte("secret")) {
			t.Errorf("hash %s does not match its own input", hash)
		}
	})

	t.Run("ok, hash does not match other input", func(t *testing.T) {
		hash, err := krypto.HashBcrypt([]byte("secret"), krypto.MinHashCost)
		if err != nil {
			t.Fatalf("failed to hash: %v", err)
		}

		if hash.MatchBytes([]byte("secre7")) {
			t.Errorf("hash %s should not match a different input", hash)
		}
	})

	t.Run("ok, two hashes of the same input differ", func(t *testing.T) {
		h1, err := krypto.HashBcrypt([]byte("secret"), krypto.MinHashCost)
		if err != nil {
			t.Fatalf("failed to hash: %v", err)
		}

		h2, err := krypto.HashBcrypt([]byte("secret"), krypto.MinHashCost)
		if err != nil {
			t.Fatalf("failed to hash: %v", err)
		}

		if h1.String() == h2.String() {
			t.Errorf("expected different encoded hashes, both were %s", h1)
		}
	})

	t.Run("fail, cost out of range", func(t *testing.T) {
		_, err := krypto.HashBcrypt([]byte("secret"), krypto.MaxHashCost+1)
		if err == nil {
			t.Errorf("expected error, got nil")
		}
	})
}

func Test_ParseBcryptHash(t *testing.T) {
	t.Run("ok, known hash round trips", func(t *testing.T) {
		hash, err := krypto.ParseBcryptHash(knownHash)
		if err != nil {
			t.Fatalf("failed to parse hash: %v", err)
		}

		if hash.String() != knownHash {
			t.Errorf("got\n%s\nwant\n%s", hash, knownHash)
		}

		cost, err := hash.Cost()
		if err != nil {
			t.Fatalf("failed to get cost: %v", err)
		}

		if cost != 10 {
			t.Errorf("got cost %d, want 10", cost)
		}
	})

	failParsing := map[string]string{
		"fail, empty":            "",
		"fail, not a hash":       "plaintext",
		"fail, wrong prefix":     "$argon2id$v=19$m=47104,t=1,p=1$fYJT8cAysfuYCBjxTEmCka$DVpK1dNdPRmhL8oTSo+RlA",
		"fail, truncated":        "$2a$10$N9qo8uLOickgx2ZMRZoMy",
		"fail, non-numeric cost": "$2a$xx$N9qo8uLOickgx2ZMRZoMye1VdLSrlEVA36lYVKN7rheMS1HJqzogW",
	}

	for name, raw := range failParsing {
		t.Run(name, func(t *testing.T) {
			_, err := krypto.ParseBcryptHash(raw)
			if !errors.Is(err, krypto.ErrInvalidBcryptHash) {
				t.Errorf("expected error to match (using errors.Is)\n%v\ngot\n%v\n", krypto.ErrInvalidBcryptHash, err)
			}
		})
	}
}

func Test_BcryptHash_TextMarshaling(t *testing.T) {
	hash, err := krypto.ParseBcryptHash(knownHash)
	if err != nil {
		t.Fatalf("failed to parse hash: %v", err)
	}

	b, err := hash.MarshalText()
	if err != nil {
		t.Fatalf("failed to marshal text: %v", err)
	}

	if string(b) != knownHash {
		t.Errorf("got\n%s\nwant\n%s", b, knownHash)
	}

	var got krypto.BcryptHash
	if err := got.UnmarshalText(b); err != nil {
		t.Fatalf("failed to unmarshal text: %v", err)
	}

	if got.String() != knownHash {
		t.Errorf("got\n%s\nwant\n%s", got, knownHash)
	}
}

func Test_BcryptHash_Scan(t *testing.T) {
	t.Run("ok, scan string", func(t *testing.T) {
		var h krypto.BcryptHash
		if err := h.Scan(knownHash); err != nil {
			t.Fatalf("failed to scan: %v", err)
		}

		if h.String() != knownHash {
			t.Errorf("got\n%s\nwant\n%s", h, knownHash)
		}
	})

	t.Run("fail, scan unsupported type", func(t *testing.T) {
		var h krypto.BcryptHash
		if err := h.Scan(42); !errors.Is(err, krypto.ErrInvalidBcryptHash) {
			t.Errorf("expected ErrInvalidBcryptHash, got %v", err)
		}
	})
}
