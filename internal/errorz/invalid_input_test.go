package errorz_test

import (
	"errors"
	"testing"

	"github.com/homefindhq/homefind/internal/errorz"
)

func Test_InvalidInput(t *testing.T) {
	sentinel := errors.New("must not be empty")

	invalid := errorz.InvalidInput{
		errorz.Keyed{Key: "name", Err: sentinel},
		errorz.Keyed{Key: "location", Err: errors.New("must not be empty")},
	}

	t.Run("ok, message lists every violation", func(t *testing.T) {
		got := invalid.Error()
		want := "invalid input: name: must not be empty, location: must not be empty"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("ok, wrapped errors stay reachable", func(t *testing.T) {
		if !errors.Is(invalid, sentinel) {
			t.Errorf("expected errors.Is to find the wrapped error")
		}

		var keyed errorz.Keyed
		if !errors.As(invalid, &keyed) {
			t.Fatalf("expected errors.As to find a Keyed error")
		}

		if keyed.Key != "name" {
			t.Errorf("got key %q, want %q", keyed.Key, "name")
		}
	})

	t.Run("ok, matches as InvalidInput through wrapping", func(t *testing.T) {
		wrapped := errorz.InvalidInput{errorz.Keyed{Key: "body", Err: sentinel}}

		var got errorz.InvalidInput
		if !errors.As(error(wrapped), &got) {
			t.Fatalf("expected errors.As to match InvalidInput")
		}

		if len(got) != 1 {
			t.Errorf("got %d errors, want 1", len(got))
		}
	})
}
