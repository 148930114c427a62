package routing

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"polaris/components/internal/domain"
)

const indexRoute = "index"

// Provider exposes the ordered ancestor chain of segments for a route name.
type Provider interface {
	Chain(routeName string) ([]domain.Segment, bool)
}

// Table is an immutable route hierarchy built from route definitions.
type Table struct {
	chains map[string][]domain.Segment
}

// NewTable validates the definitions and precomputes the segment chain of
// every route. A route whose child is named "index" resolves through that
// child, so "home.the-beginning" picks up the segments of
// "home.the-beginning.index".
func NewTable(defs []domain.RouteDefinition) (*Table, error) {
	own := make(map[string][]domain.Segment, len(defs))

	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		if _, dup := own[name]; dup {
			return nil, fmt.Errorf("duplicate route %q", name)
		}

		segments, err := parseTemplate(def.Path)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", name, err)
		}
		own[name] = segments
	}

	for name := range own {
		if idx := strings.LastIndex(name, "."); idx > 0 {
			if _, ok := own[name[:idx]]; !ok {
				return nil, fmt.Errorf("route %q has no parent route %q", name, name[:idx])
			}
		}
	}

	t := &Table{chains: make(map[string][]domain.Segment, len(own))}
	for name := range own {
		parts := strings.Split(name, ".")
		var chain []domain.Segment
		for i := 1; i <= len(parts); i++ {
			chain = append(chain, own[strings.Join(parts[:i], ".")]...)
		}
		if parts[len(parts)-1] != indexRoute {
			chain = append(chain, own[name+"."+indexRoute]...)
		}
		t.chains[name] = chain
	}

	return t, nil
}

// Chain implements Provider.
func (t *Table) Chain(routeName string) ([]domain.Segment, bool) {
	chain, ok := t.chains[routeName]
	if !ok {
		return nil, false
	}
	return slices.Clone(chain), true
}

// Names returns the configured route names in lexical order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.chains))
	for name := range t.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("route name is empty")
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return fmt.Errorf("route %q has an empty segment", name)
		}
	}
	return nil
}

// parseTemplate splits a relative path template such as "really/:id".
func parseTemplate(path string) ([]domain.Segment, error) {
	var segments []domain.Segment
	for _, part := range strings.Split(path, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, ":") {
			if len(part) == 1 {
				return nil, fmt.Errorf("dynamic segment without a name in %q", path)
			}
			segments = append(segments, domain.Segment{Value: part[1:], Dynamic: true})
			continue
		}
		segments = append(segments, domain.Segment{Value: part})
	}
	return segments, nil
}
