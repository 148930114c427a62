package component

import (
	"html/template"

	"polaris/components/internal/domain"
)

// Page is a full page with a header, optional breadcrumbs and actions, and
// caller supplied content.
type Page struct {
	Name             string
	Title            string
	FullWidth        bool
	SingleColumn     bool
	PrimaryAction    *domain.Action
	SecondaryActions []domain.Action
	Breadcrumbs      []domain.Breadcrumb
	Content          template.HTML
}

func (p Page) Classes() ClassNames {
	return PageClasses(p)
}

// ShowSecondaryActions reports whether secondary actions were supplied. An
// empty but non-nil list still renders the secondary actions container.
func (p Page) ShowSecondaryActions() bool {
	return p.SecondaryActions != nil
}

// Activate builds the event for the page action with the given key.
func (p Page) Activate(key string) (*domain.ActionEvent, error) {
	return activate("page", p.Name, key, p.PrimaryAction, p.SecondaryActions)
}

type pageView struct {
	Classes       string
	HeaderClasses string
	Title         string
	Breadcrumbs   []breadcrumbView
	Primary       *buttonView
	ShowSecondary bool
	Secondary     []buttonView
	Content       template.HTML
}

type breadcrumbView struct {
	Href    string
	Content string
	Icon    template.HTML
}
