package health

import "errors"

// Codec errors. Callers match them with errors.Is; the returned errors
// wrap these sentinels with the offending value.
var (
	// ErrRange indicates a numeric argument does not fit its wire field.
	ErrRange = errors.New("health: value out of range")

	// ErrFormat indicates an argument string is not a valid number.
	ErrFormat = errors.New("health: invalid number format")

	// ErrMalformedPayload indicates a status payload is shorter than its layout requires.
	ErrMalformedPayload = errors.New("health: malformed payload")
)
