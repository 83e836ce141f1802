package email_test

import (
	"errors"
	"testing"

	"github.com/homefindhq/homefind/internal/email"
)

func Test_ParseAddress(t *testing.T) {
	ok := map[string]struct {
		raw  string
		want email.Address
	}{
		"ok, plain address":      {"alice@example.com", "alice@example.com"},
		"ok, subdomain":          {"alice@mail.example.com", "alice@mail.example.com"},
		"ok, surrounding space":  {"  alice@example.com ", "alice@example.com"},
		"ok, uppercase lowered":  {"A@X.com", "a@x.com"},
		"ok, mixed case lowered": {"Alice.Smith@Example.COM", "alice.smith@example.com"},
		"ok, plus addressing":    {"alice+homes@example.com", "alice+homes@example.com"},
	}

	for name, tc := range ok {
		t.Run(name, func(t *testing.T) {
			got, err := email.ParseAddress(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}

	fail := map[string]string{
		"fail, empty":            "",
		"fail, no at sign":       "alice.example.com",
		"fail, name and address": "Alice <alice@example.com>",
		"fail, comment":          "alice@example.com(comment)",
		"fail, spaces inside":    "al ice@example.com",
	}

	for name, raw := range fail {
		t.Run(name, func(t *testing.T) {
			_, err := email.ParseAddress(raw)
			if !errors.Is(err, email.ErrInvalidEmail) {
				t.Errorf("expected ErrInvalidEmail, got %v", err)
			}
		})
	}
}

func Test_Address_UnmarshalText(t *testing.T) {
	var a email.Address
	if err := a.UnmarshalText([]byte("Bob@Example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a != "bob@example.com" {
		t.Errorf("got %q, want %q", a, "bob@example.com")
	}

	if err := a.UnmarshalText([]byte("not-an-address")); err == nil {
		t.Errorf("expected error, got nil")
	}
}
