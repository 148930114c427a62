package routing

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRoute  = errors.New("unknown route")
	ErrMissingParams = errors.New("not enough params for dynamic segments")
	ErrExtraParams   = errors.New("more params than dynamic segments")
	ErrInvalidParam  = errors.New("param cannot be used as a path segment")
)

// ResolutionError is returned when a route name and its params cannot be
// turned into a path. Err is one of the sentinel errors above, possibly wrapped.
type ResolutionError struct {
	Route string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve route %q: %v", e.Route, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func resolutionErr(route string, format string, args ...any) error {
	return &ResolutionError{Route: route, Err: fmt.Errorf(format, args...)}
}
