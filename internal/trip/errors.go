package trip

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode indicates a line is not a JSON object.
	ErrDecode = errors.New("record is not a valid JSON object")
	// ErrMissingField indicates latitude or longitude is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField indicates latitude or longitude is not a number.
	ErrInvalidField = errors.New("field is not a number")
	// ErrOutOfRange indicates a coordinate outside [-90, 90] / [-180, 180].
	ErrOutOfRange = errors.New("coordinate out of range")
)

// LineError attaches the 1-based input line number to a record error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
