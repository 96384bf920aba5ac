package model

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Error kinds. Callers wrap one of these with %w and the presentation layer
// maps them to a response status with errors.Is.
var (
	// ErrValidation marks missing, malformed or out-of-range input, including
	// degenerate numeric input such as a zero tenure.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a reference to a record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks a failed persistence operation. The operation's
	// transaction has been rolled back when this is returned.
	ErrStorage = errors.New("storage error")
)

// maxTextLength bounds free-text fields to what the VARCHAR(255) columns hold.
const maxTextLength = 255

func checkLength(field, v string) error {
	if utf8.RuneCountInString(v) > maxTextLength {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrValidation, field, maxTextLength)
	}
	return nil
}
