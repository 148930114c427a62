package icon

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
)

//go:embed assets/*.svg
var assets embed.FS

type staticProvider struct {
	set   string
	icons map[string]string
}

// NewStatic serves the icons bundled with the binary.
func NewStatic(set string) (Provider, error) {
	entries, err := fs.ReadDir(assets, "assets")
	if err != nil {
		return nil, fmt.Errorf("failed to list bundled icons: %w", err)
	}

	icons := make(map[string]string, len(entries))
	for _, entry := range entries {
		data, err := assets.ReadFile(path.Join("assets", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read bundled icon %s: %w", entry.Name(), err)
		}
		icons[strings.TrimSuffix(entry.Name(), ".svg")] = string(data)
	}

	return NewStaticFromMap(set, icons), nil
}

// NewStaticFromMap serves icons from raw SVG documents keyed by name.
func NewStaticFromMap(set string, icons map[string]string) Provider {
	return &staticProvider{set: set, icons: icons}
}

func (p *staticProvider) Icon(_ context.Context, name string) (template.HTML, error) {
	source := Source(p.set, name)
	raw, ok := p.icons[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, source)
	}
	return Decorate(raw, source)
}
