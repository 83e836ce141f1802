package errorz

import "strings"

// InvalidInput collects the field-level errors that made an input
// unacceptable. Callers reach the individual errors via errors.As,
// typically looking for Keyed values to report which fields to fix.
type InvalidInput []error

func (e InvalidInput) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}

	return "invalid input: " + strings.Join(msgs, ", ")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e InvalidInput) Unwrap() []error {
	return e
}
