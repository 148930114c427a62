package icon

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrNotFound    = errors.New("icon not found")
	ErrNotSVG      = errors.New("asset is not an svg document")
	ErrCircuitOpen = errors.New("icon lookup circuit breaker is open")
)

// Provider resolves an icon name to renderable SVG markup.
type Provider interface {
	Icon(ctx context.Context, name string) (template.HTML, error)
}

// Source is the identifier an icon is rendered with, e.g. "polaris/add".
func Source(set, name string) string {
	return set + "/" + name
}

// Decorate marks the root svg element of an asset with its source and the
// attributes the icon wrapper expects.
func Decorate(raw, source string) (template.HTML, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse icon %s: %w", source, err)
	}

	svg := doc.Find("svg").First()
	if svg.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotSVG, source)
	}

	svg.SetAttr("data-icon-source", source)
	svg.SetAttr("focusable", "false")
	svg.SetAttr("aria-hidden", "true")
	svg.AddClass("Polaris-Icon__Svg")
	svg.Find("script").Remove()

	out, err := goquery.OuterHtml(svg)
	if err != nil {
		return "", fmt.Errorf("failed to render icon %s: %w", source, err)
	}

	return template.HTML(out), nil
}
