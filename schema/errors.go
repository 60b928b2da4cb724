package schema

import "github.com/rotisserie/eris"

// Sentinel errors for the decision engine. Callers match them with errors.Is.
var (
	// ErrInvalidInput marks missing or malformed signal fields. No partial result is returned.
	ErrInvalidInput = eris.New("invalid input")

	// ErrConfiguration marks an engine configuration that failed validation at construction.
	ErrConfiguration = eris.New("configuration error")
)

// invalidf wraps ErrInvalidInput with entity context.
func invalidf(format string, args ...any) error {
	return eris.Wrapf(ErrInvalidInput, format, args...)
}
