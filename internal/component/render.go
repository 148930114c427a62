package component

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	log "github.com/sirupsen/logrus"

	"polaris/components/internal/domain"
	"polaris/components/internal/icon"
	"polaris/components/internal/routing"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns component values into HTML. It resolves breadcrumb routes
// and icons before executing the templates, so a failed render writes nothing.
type Renderer struct {
	resolver          *routing.Resolver
	icons             icon.Provider
	tmpl              *template.Template
	strictBreadcrumbs bool
	breadcrumbIcon    string
}

type RendererOption func(*Renderer)

// WithStrictBreadcrumbs makes a breadcrumb that fails to resolve fail the
// whole render instead of being left out.
func WithStrictBreadcrumbs(strict bool) RendererOption {
	return func(r *Renderer) {
		r.strictBreadcrumbs = strict
	}
}

func WithBreadcrumbIcon(name string) RendererOption {
	return func(r *Renderer) {
		r.breadcrumbIcon = name
	}
}

func NewRenderer(resolver *routing.Resolver, icons icon.Provider, opts ...RendererOption) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse component templates: %w", err)
	}

	r := &Renderer{
		resolver:       resolver,
		icons:          icons,
		tmpl:           tmpl,
		breadcrumbIcon: "chevron-left",
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *Renderer) RenderPage(ctx context.Context, w io.Writer, p Page) error {
	view, err := r.pageView(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to render page %q: %w", p.Name, err)
	}
	return r.execute(w, "page", view)
}

func (r *Renderer) RenderPageActions(ctx context.Context, w io.Writer, p PageActions) error {
	view := pageActionsView{
		Primary:       r.primaryButton(ctx, p.PrimaryAction),
		ShowSecondary: p.ShowSecondaryActions(),
	}

	for i, a := range p.SecondaryActions {
		view.Secondary = append(view.Secondary, r.button(ctx, Button{
			Text:        a.Text,
			Destructive: a.Destructive,
			Disabled:    a.Disabled,
			Icon:        a.Icon,
			Key:         SecondaryKey(i),
		}))
	}

	return r.execute(w, "page-actions", view)
}

func (r *Renderer) RenderActionList(ctx context.Context, w io.Writer, l ActionList) error {
	items := make([]itemView, 0, len(l.Items))

	for i, item := range l.Items {
		view := itemView{
			Classes:    item.Classes().String(),
			Role:       item.Role,
			Active:     item.Active,
			Disabled:   item.Disabled,
			Key:        ItemKey(i),
			URL:        item.URL,
			Text:       item.DisplayText(),
			HelpText:   item.HelpText,
			ImageStyle: item.ImageBackgroundStyle(),
		}
		if view.ImageStyle == "" && item.Icon != "" {
			view.Icon = r.icon(ctx, item.Icon)
		}
		if item.Badge != nil {
			view.Badge = &badgeView{
				Classes: BadgeClasses(item.Badge.Status).String(),
				Content: item.Badge.Content,
			}
		}
		items = append(items, view)
	}

	return r.execute(w, "action-list", items)
}

func (r *Renderer) pageView(ctx context.Context, p Page) (pageView, error) {
	view := pageView{
		Classes:       p.Classes().String(),
		Title:         p.Title,
		Primary:       r.primaryButton(ctx, p.PrimaryAction),
		ShowSecondary: p.ShowSecondaryActions(),
		Content:       p.Content,
	}

	breadcrumbs, err := r.breadcrumbs(ctx, p.Breadcrumbs)
	if err != nil {
		return pageView{}, err
	}
	view.Breadcrumbs = breadcrumbs
	view.HeaderClasses = HeaderClasses(len(breadcrumbs) > 0).String()

	for i, a := range p.SecondaryActions {
		view.Secondary = append(view.Secondary, buttonView{
			Text:     a.Text,
			Disabled: a.Disabled,
			Key:      SecondaryKey(i),
			Icon:     r.iconIfSet(ctx, a.Icon),
		})
	}

	return view, nil
}

func (r *Renderer) breadcrumbs(ctx context.Context, crumbs []domain.Breadcrumb) ([]breadcrumbView, error) {
	if len(crumbs) == 0 {
		return nil, nil
	}

	views := make([]breadcrumbView, 0, len(crumbs))
	for _, b := range crumbs {
		href, err := r.resolver.ResolveBreadcrumb(b)
		if err != nil {
			if r.strictBreadcrumbs {
				return nil, fmt.Errorf("breadcrumb %q: %w", b.Content, err)
			}
			log.Warnf("⚠️ Skipping breadcrumb %q: %v", b.Content, err)
			continue
		}

		views = append(views, breadcrumbView{
			Href:    href,
			Content: b.Content,
			Icon:    r.icon(ctx, r.breadcrumbIcon),
		})
	}

	return views, nil
}

func (r *Renderer) primaryButton(ctx context.Context, a *domain.Action) *buttonView {
	if a == nil {
		return nil
	}
	b := r.button(ctx, Button{
		Text:        a.Text,
		Primary:     true,
		Destructive: a.Destructive,
		Disabled:    a.Disabled,
		Icon:        a.Icon,
		Key:         PrimaryKey,
	})
	return &b
}

func (r *Renderer) button(ctx context.Context, b Button) buttonView {
	return buttonView{
		Classes:  ButtonClasses(b).String(),
		Text:     b.Text,
		Disabled: b.Disabled,
		Key:      b.Key,
		Icon:     r.iconIfSet(ctx, b.Icon),
	}
}

func (r *Renderer) iconIfSet(ctx context.Context, name string) template.HTML {
	if name == "" {
		return ""
	}
	return r.icon(ctx, name)
}

// icon never fails a render; a missing icon leaves an empty wrapper.
func (r *Renderer) icon(ctx context.Context, name string) template.HTML {
	svg, err := r.icons.Icon(ctx, name)
	if err != nil {
		log.Warnf("⚠️ Failed to load icon %s: %v", name, err)
		return ""
	}
	return svg
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
