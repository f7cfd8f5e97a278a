package entforge

import (
	"errors"

	"github.com/entforge/entforge/strcase"
)

var (
	ErrUnknownFilter     = errors.New("entforge: unknown filter")
	ErrUndefinedVariable = errors.New("entforge: undefined variable")
	ErrNotIterable       = errors.New("entforge: value is not iterable")
	ErrUnterminatedBlock = errors.New("entforge: unterminated block")
	ErrUnexpectedCloser  = errors.New("entforge: unexpected closing tag")
	ErrBadExpression     = errors.New("entforge: malformed expression")
)

// ErrorKind maps an error chain to its taxonomy name for failure reports.
// Unrecognized errors report as "Internal".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, strcase.ErrInvalidIdentifier):
		return "InvalidIdentifier"
	case errors.Is(err, ErrUnknownFilter):
		return "UnknownFilter"
	case errors.Is(err, ErrUndefinedVariable):
		return "UndefinedVariable"
	case errors.Is(err, ErrNotIterable):
		return "NotIterable"
	case errors.Is(err, ErrUnterminatedBlock):
		return "UnterminatedBlock"
	case errors.Is(err, ErrUnexpectedCloser):
		return "UnexpectedCloser"
	case errors.Is(err, ErrBadExpression):
		return "BadExpression"
	default:
		return "Internal"
	}
}
