package component

import (
	"slices"
	"strings"
)

// ClassNames is an ordered set of CSS class names.
type ClassNames struct {
	names []string
}

func NewClassNames(base ...string) ClassNames {
	var c ClassNames
	c.Add(base...)
	return c
}

// Add appends names that are not empty and not already present.
func (c *ClassNames) Add(names ...string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(c.names, name) {
			continue
		}
		c.names = append(c.names, name)
	}
}

func (c *ClassNames) AddIf(cond bool, name string) {
	if cond {
		c.Add(name)
	}
}

func (c ClassNames) Has(name string) bool {
	return slices.Contains(c.names, name)
}

func (c ClassNames) Names() []string {
	return slices.Clone(c.names)
}

func (c ClassNames) String() string {
	return strings.Join(c.names, " ")
}

// ItemClasses derives the classes of an action list item.
func ItemClasses(item ActionListItem) ClassNames {
	c := NewClassNames("Polaris-ActionList__Item")
	c.AddIf(item.Destructive, "Polaris-ActionList--destructive")
	c.AddIf(item.Disabled, "Polaris-ActionList--disabled")
	c.AddIf(item.Active, "Polaris-ActionList--active")
	return c
}

func PageClasses(p Page) ClassNames {
	c := NewClassNames("Polaris-Page")
	c.AddIf(p.FullWidth, "Polaris-Page--fullWidth")
	c.AddIf(p.SingleColumn, "Polaris-Page--singleColumn")
	return c
}

func HeaderClasses(hasBreadcrumbs bool) ClassNames {
	c := NewClassNames("Polaris-Page__Header")
	c.AddIf(hasBreadcrumbs, "Polaris-Page__Header--hasBreadcrumbs")
	return c
}

func ButtonClasses(b Button) ClassNames {
	c := NewClassNames("Polaris-Button")
	c.AddIf(b.Primary, "Polaris-Button--primary")
	c.AddIf(b.Destructive, "Polaris-Button--destructive")
	c.AddIf(b.Disabled, "Polaris-Button--disabled")
	c.AddIf(b.Plain, "Polaris-Button--plain")
	return c
}

// BadgeClasses maps a badge status such as "success" to its modifier class.
func BadgeClasses(status string) ClassNames {
	c := NewClassNames("Polaris-Badge")
	if status = strings.TrimSpace(status); status != "" {
		c.Add("Polaris-Badge--status" + strings.ToUpper(status[:1]) + status[1:])
	}
	return c
}
