package moose

import "fmt"

// Kind classifies a moose error.
type Kind string

const (
	DimensionError    Kind = "dimension"
	InvalidColorError Kind = "invalid_color"
	EmptyGridError    Kind = "empty_grid"
	DecodeRangeError  Kind = "decode_range"
)

// Error is returned by every operation in this package.
type Error struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrDimension) matches any dimension error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrDimension    = &Error{Kind: DimensionError}
	ErrInvalidColor = &Error{Kind: InvalidColorError}
	ErrEmptyGrid    = &Error{Kind: EmptyGridError}
	ErrDecodeRange  = &Error{Kind: DecodeRangeError}
)

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
