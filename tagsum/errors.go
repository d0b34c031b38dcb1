package tagsum

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedChar is reported for a character outside the scanner grammar.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrMalformedNumber is reported for a sign that is not followed by digits.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrNumberRange is reported when a literal does not fit in an int64.
	ErrNumberRange = errors.New("number out of range")
	// ErrUnbalanced is reported for mismatched or unterminated containers.
	ErrUnbalanced = errors.New("unbalanced containers")
	// ErrEmptySentinel is returned when a sentinel-aware sum is asked for without a word.
	ErrEmptySentinel = errors.New("empty sentinel word")
)

// ScanError is a fatal scan or walk error with location.
type ScanError struct {
	Message string
	Pos     Position
	Err     error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Unwrap returns the error class, for use with errors.Is.
func (e *ScanError) Unwrap() error {
	return e.Err
}
