package auth

import (
	"fmt"

	"github.com/homefindhq/homefind/internal/krypto"
)

const (
	minPasswordBytes = 6
	// bcrypt only considers the first 72 bytes of its input, so longer
	// passwords are rejected instead of being silently truncated.
	maxPasswordBytes = 72
)

var ErrInvalidPassword = fmt.Errorf("invalid password")

// Password is a plaintext password.
//
// It should never be persisted, logged or exposed in any other way. To
// protect ourselves from accidentally doing so, the type implements
// several common interfaces that would allow it to be used inappropriately.
//
// There are only two operations allowed on a Password:
// - Converting it to a hash.
// - Comparing it with an existing hash to see if they match.
type Password struct {
	plain []byte
}

// ParsePassword creates a new Password from a plaintext string.
// It errors if the password is too short or too long.
func ParsePassword(pwd string) (Password, error) {
	if len(pwd) < minPasswordBytes || len(pwd) > maxPasswordBytes {
		return Password{}, ErrInvalidPassword
	}

	return Password{
		plain: []byte(pwd),
	}, nil
}

// Match checks if the plaintext password matches the given hash.
func (p Password) Match(h krypto.BcryptHash) bool {
	return h.MatchBytes(p.plain)
}

// Hash hashes the plaintext password using bcrypt with the given cost.
func (p Password) Hash(cost int) (krypto.BcryptHash, error) {
	return krypto.HashBcrypt(p.plain, cost)
}

func (p Password) Format(f fmt.State, verb rune) {
	f.Write([]byte(krypto.SecretMarker))
}

func (p Password) MarshalText() ([]byte, error) {
	return []byte(krypto.SecretMarker), nil
}

func (p *Password) UnmarshalText(text []byte) error {
	pwd, err := ParsePassword(string(text))
	if err != nil {
		return err
	}

	*p = pwd

	return nil
}
