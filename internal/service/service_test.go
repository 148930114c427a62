package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polaris/components/internal/component"
	"polaris/components/internal/domain"
	"polaris/components/internal/events"
	"polaris/components/internal/icon"
	"polaris/components/internal/page"
	"polaris/components/internal/routing"
)

type failingEmitter struct{}

func (failingEmitter) Emit(context.Context, *domain.ActionEvent) error {
	return errors.New("stream unavailable")
}

func newTestService(t *testing.T, emitter events.Emitter) *Service {
	t.Helper()

	table, err := routing.NewTable([]domain.RouteDefinition{
		{Name: "home", Path: "home"},
		{Name: "home.the-beginning", Path: "the-beginning"},
		{Name: "home.the-beginning.index", Path: ":first_id/:second_id"},
		{Name: "home.the-beginning.really", Path: "really/:really_id"},
	})
	require.NoError(t, err)
	resolver := routing.NewResolver(table)

	icons, err := icon.NewStatic("polaris")
	require.NoError(t, err)
	renderer, err := component.NewRenderer(resolver, icons)
	require.NoError(t, err)

	catalog, err := page.NewCatalog(component.Page{
		Name:          "orders",
		Title:         "Orders",
		PrimaryAction: &domain.Action{Text: "Create order", Icon: "add"},
		SecondaryActions: []domain.Action{
			{Text: "Export"},
			{Text: "Archive", Disabled: true},
		},
		Breadcrumbs: []domain.Breadcrumb{
			{Content: "Home", RouteName: "home"},
			{Content: "Really", RouteName: "home.the-beginning.really", Params: 19},
		},
	})
	require.NoError(t, err)

	return NewService(catalog, renderer, resolver, emitter)
}

func TestService_RenderPage(t *testing.T) {
	s := newTestService(t, events.NewBus(1))

	var buf bytes.Buffer
	require.NoError(t, s.RenderPage(context.Background(), "orders", &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Orders", doc.Find("h1.Polaris-DisplayText").Text())

	var hrefs []string
	doc.Find("a.Polaris-Breadcrumbs__Breadcrumb").Each(func(_ int, s *goquery.Selection) {
		hrefs = append(hrefs, s.AttrOr("href", ""))
	})
	assert.Equal(t, []string{"/home", "/home/the-beginning/really/19"}, hrefs)
}

func TestService_RenderPageNotFound(t *testing.T) {
	s := newTestService(t, events.NewBus(1))

	var buf bytes.Buffer
	err := s.RenderPage(context.Background(), "missing", &buf)
	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.Zero(t, buf.Len())
}

func TestService_Activate(t *testing.T) {
	bus := events.NewBus(4)
	defer bus.Close()
	ch, cancel := bus.Subscribe()
	defer cancel()

	s := newTestService(t, bus)

	event, err := s.Activate(context.Background(), "orders", component.SecondaryKey(0))
	require.NoError(t, err)
	assert.Equal(t, "page", event.Component)
	assert.Equal(t, "orders", event.Page)
	assert.Equal(t, "Export", event.Text)

	received := <-ch
	assert.Equal(t, event.ID, received.ID)
}

func TestService_ActivateErrors(t *testing.T) {
	s := newTestService(t, events.NewBus(1))
	ctx := context.Background()

	_, err := s.Activate(ctx, "missing", component.PrimaryKey)
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = s.Activate(ctx, "orders", "secondary-9")
	assert.ErrorIs(t, err, component.ErrUnknownAction)

	_, err = s.Activate(ctx, "orders", component.SecondaryKey(1))
	assert.ErrorIs(t, err, component.ErrActionDisabled)

	_, err = newTestService(t, failingEmitter{}).Activate(ctx, "orders", component.PrimaryKey)
	assert.ErrorContains(t, err, "stream unavailable")
}

func TestService_Resolve(t *testing.T) {
	s := newTestService(t, events.NewBus(1))

	path, err := s.Resolve("home.the-beginning", []string{"13", "27"})
	require.NoError(t, err)
	assert.Equal(t, "/home/the-beginning/13/27", path)

	path, err = s.Resolve("home", nil)
	require.NoError(t, err)
	assert.Equal(t, "/home", path)

	_, err = s.Resolve("home.the-beginning", nil)
	assert.ErrorIs(t, err, routing.ErrMissingParams)
}

func TestService_PageNames(t *testing.T) {
	s := newTestService(t, events.NewBus(1))
	assert.Equal(t, []string{"orders"}, s.PageNames())
}
