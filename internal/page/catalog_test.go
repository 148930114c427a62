package page

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polaris/components/internal/component"
	"polaris/components/internal/domain"
)

const ordersPage = `
name: orders
title: Orders
full_width: true
primary_action:
  text: Create order
  icon: add
secondary_actions:
  - text: Export
    icon: horizontal-dots
  - text: Cancel all
    icon: cancel
    disabled: true
breadcrumbs:
  - content: Go back
    route: home
  - content: No, really!
    route: home.the-beginning
    models:
      - id: 13
      - 27
  - content: I'm telling you!
    route: home.the-beginning.really
    models: 19
content: <p class="orders">Orders list</p>
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(ordersPage))
	require.NoError(t, err)

	assert.Equal(t, "orders", p.Name)
	assert.Equal(t, "Orders", p.Title)
	assert.True(t, p.FullWidth)
	assert.False(t, p.SingleColumn)
	require.NotNil(t, p.PrimaryAction)
	assert.Equal(t, domain.Action{Text: "Create order", Icon: "add"}, *p.PrimaryAction)
	require.Len(t, p.SecondaryActions, 2)
	assert.True(t, p.SecondaryActions[1].Disabled)

	require.Len(t, p.Breadcrumbs, 3)
	assert.Nil(t, p.Breadcrumbs[0].Params)
	assert.Equal(t, []any{map[string]any{"id": 13}, 27}, p.Breadcrumbs[1].Params)
	assert.Equal(t, 19, p.Breadcrumbs[2].Params)

	assert.Equal(t, `<p class="orders">Orders list</p>`, string(p.Content))
}

func TestParse_SecondaryActionsPresence(t *testing.T) {
	p, err := Parse([]byte("title: t\nsecondary_actions: []\n"))
	require.NoError(t, err)
	assert.True(t, p.ShowSecondaryActions())

	p, err = Parse([]byte("title: t\n"))
	require.NoError(t, err)
	assert.False(t, p.ShowSecondaryActions())
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"no title":         "name: x\n",
		"unknown key":      "title: t\ncolour: red\n",
		"breadcrumb route": "title: t\nbreadcrumbs:\n  - content: c\n",
		"malformed yaml":   "title: [\n",
		"empty document":   "",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.yaml"), []byte(ordersPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yml"), []byte("title: Settings\nprimary_action:\n  text: Save\n  icon: add\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	c, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"orders", "settings"}, c.Names())

	settings, ok := c.Get("settings")
	require.True(t, ok)
	assert.Equal(t, "Settings", settings.Title)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"add", "horizontal-dots", "cancel"}, c.Icons())
}

func TestLoadDir_Errors(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: same\ntitle: A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: same\ntitle: B\n"), 0o644))
	_, err = LoadDir(dir)
	assert.ErrorContains(t, err, "duplicate page")
}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog(component.Page{Name: "a", Title: "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, c.Names())
	assert.Empty(t, c.Icons())
}
