package routing

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polaris/components/internal/domain"
)

func testRoutes() []domain.RouteDefinition {
	return []domain.RouteDefinition{
		{Name: "home", Path: "home"},
		{Name: "home.the-beginning", Path: "the-beginning"},
		{Name: "home.the-beginning.index", Path: ":first_id/:second_id"},
		{Name: "home.the-beginning.really", Path: "really/:really_id"},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	table, err := NewTable(testRoutes())
	require.NoError(t, err)
	return NewResolver(NewRegistry(table))
}

type product struct{ id int }

func (p product) RouteID() string { return "p-" + strconv.Itoa(p.id) }

type sku struct{ code string }

func (s sku) String() string { return s.code }

func TestResolver_Resolve(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name   string
		route  string
		params []any
		want   string
	}{
		{"static route", "home", nil, "/home"},
		{"index route with two params", "home.the-beginning", []any{13, 27}, "/home/the-beginning/13/27"},
		{"leaf with scalar param", "home.the-beginning.really", []any{19}, "/home/the-beginning/really/19"},
		{"string params", "home.the-beginning", []any{"a", "b"}, "/home/the-beginning/a/b"},
		{"model object", "home.the-beginning", []any{map[string]any{"id": 13}, 27}, "/home/the-beginning/13/27"},
		{"identifier", "home.the-beginning.really", []any{product{id: 7}}, "/home/the-beginning/really/p-7"},
		{"escaped value", "home.the-beginning.really", []any{"a b/c"}, "/home/the-beginning/really/a%20b%2Fc"},
		{"explicit index", "home.the-beginning.index", []any{1, 2}, "/home/the-beginning/1/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.route, tt.params...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_SequenceAndScalarEquivalent(t *testing.T) {
	r := newTestResolver(t)

	scalar, err := r.Resolve("home.the-beginning.really", 19)
	require.NoError(t, err)

	sequence, err := r.Resolve("home.the-beginning.really", []int{19})
	require.NoError(t, err)

	assert.Equal(t, scalar, sequence)

	pair, err := r.Resolve("home.the-beginning", []any{13, 27})
	require.NoError(t, err)
	assert.Equal(t, "/home/the-beginning/13/27", pair)
}

func TestResolver_Deterministic(t *testing.T) {
	r := newTestResolver(t)

	first, err := r.Resolve("home.the-beginning", 13, 27)
	require.NoError(t, err)
	second, err := r.Resolve("home.the-beginning", 13, 27)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolver_Errors(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name   string
		route  string
		params []any
		want   error
	}{
		{"unknown route", "unknown.route", []any{1}, ErrUnknownRoute},
		{"empty route", "", nil, ErrUnknownRoute},
		{"missing params", "home.the-beginning", nil, ErrMissingParams},
		{"one param short", "home.the-beginning", []any{13}, ErrMissingParams},
		{"extra params", "home", []any{1}, ErrExtraParams},
		{"nested sequence", "home.the-beginning", []any{[]int{1, 2}, 3}, ErrInvalidParam},
		{"model without id", "home.the-beginning.really", []any{map[string]any{"name": "x"}}, ErrInvalidParam},
		{"empty value", "home.the-beginning.really", []any{""}, ErrInvalidParam},
		{"unsupported type", "home.the-beginning.really", []any{struct{}{}}, ErrInvalidParam},
		{"nil stringer", "home.the-beginning.really", []any{(*sku)(nil)}, ErrInvalidParam},
		{"nil identifier", "home.the-beginning.really", []any{(*product)(nil)}, ErrInvalidParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := r.Resolve(tt.route, tt.params...)
			require.Error(t, err)
			assert.Empty(t, path)
			assert.ErrorIs(t, err, tt.want)

			var resErr *ResolutionError
			require.True(t, errors.As(err, &resErr))
			assert.Equal(t, tt.route, resErr.Route)
		})
	}
}

func TestResolver_ResolveBreadcrumb(t *testing.T) {
	r := newTestResolver(t)

	crumbs := []struct {
		crumb domain.Breadcrumb
		want  string
	}{
		{domain.Breadcrumb{Content: "Go back", RouteName: "home"}, "/home"},
		{domain.Breadcrumb{Content: "No, really!", RouteName: "home.the-beginning", Params: []any{map[string]any{"id": 13}, 27}}, "/home/the-beginning/13/27"},
		{domain.Breadcrumb{Content: "I'm telling you!", RouteName: "home.the-beginning.really", Params: 19}, "/home/the-beginning/really/19"},
	}

	for _, c := range crumbs {
		got, err := r.ResolveBreadcrumb(c.crumb)
		require.NoError(t, err, c.crumb.Content)
		assert.Equal(t, c.want, got, c.crumb.Content)
	}

	_, err := r.ResolveBreadcrumb(domain.Breadcrumb{RouteName: "home.the-beginning", Params: []any{[]any{13, 27}}})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestResolver_FollowsRegistrySwap(t *testing.T) {
	table, err := NewTable(testRoutes())
	require.NoError(t, err)
	registry := NewRegistry(table)
	r := NewResolver(registry)

	_, err = r.Resolve("settings")
	require.ErrorIs(t, err, ErrUnknownRoute)

	next, err := NewTable(append(testRoutes(), domain.RouteDefinition{Name: "settings", Path: "/settings/"}))
	require.NoError(t, err)
	previous := registry.Swap(next)
	assert.Same(t, table, previous)

	got, err := r.Resolve("settings")
	require.NoError(t, err)
	assert.Equal(t, "/settings", got)
}

func TestResolver_EmptyChainIsRoot(t *testing.T) {
	table, err := NewTable([]domain.RouteDefinition{{Name: "application", Path: ""}})
	require.NoError(t, err)

	got, err := NewResolver(table).Resolve("application")
	require.NoError(t, err)
	assert.Equal(t, "/", got)
}
