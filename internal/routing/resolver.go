package routing

import (
	"net/url"
	"strings"

	"polaris/components/internal/domain"
)

// Resolver expands route names into slash-delimited paths. It keeps no state
// of its own; every call reads the provider once.
type Resolver struct {
	provider Provider
}

func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve walks the route chain from the root to routeName, emitting static
// segments verbatim and consuming params in order for dynamic ones. A single
// param that is itself a slice is treated as the whole param sequence.
func (r *Resolver) Resolve(routeName string, params ...any) (string, error) {
	if len(params) == 1 {
		params = NormalizeParams(params[0])
	}
	return r.resolve(routeName, params)
}

// ResolveBreadcrumb resolves the route and params of a breadcrumb.
func (r *Resolver) ResolveBreadcrumb(b domain.Breadcrumb) (string, error) {
	return r.resolve(b.RouteName, NormalizeParams(b.Params))
}

func (r *Resolver) resolve(routeName string, params []any) (string, error) {
	if routeName == "" {
		return "", resolutionErr(routeName, "%w: empty route name", ErrUnknownRoute)
	}

	chain, ok := r.provider.Chain(routeName)
	if !ok {
		return "", &ResolutionError{Route: routeName, Err: ErrUnknownRoute}
	}

	var b strings.Builder
	next := 0
	for _, seg := range chain {
		b.WriteByte('/')
		if !seg.Dynamic {
			b.WriteString(seg.Value)
			continue
		}

		if next >= len(params) {
			return "", resolutionErr(routeName, "%w: segment :%s needs param #%d, got %d",
				ErrMissingParams, seg.Value, next+1, len(params))
		}

		value, err := paramString(params[next])
		if err != nil {
			return "", resolutionErr(routeName, "param #%d for :%s: %w", next+1, seg.Value, err)
		}
		if value == "" {
			return "", resolutionErr(routeName, "%w: empty value for :%s", ErrInvalidParam, seg.Value)
		}

		b.WriteString(url.PathEscape(value))
		next++
	}

	if next < len(params) {
		return "", resolutionErr(routeName, "%w: used %d of %d", ErrExtraParams, next, len(params))
	}

	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}
