package component

import (
	"fmt"
	"html/template"
	"strings"

	"polaris/components/internal/domain"
)

// ActionListItem is a single row of an action list.
type ActionListItem struct {
	Text        string        `yaml:"text"`
	HelpText    string        `yaml:"help_text,omitempty"`
	URL         string        `yaml:"url,omitempty"`
	Destructive bool          `yaml:"destructive,omitempty"`
	Disabled    bool          `yaml:"disabled,omitempty"`
	Icon        string        `yaml:"icon,omitempty"`
	Image       string        `yaml:"image,omitempty"`
	Ellipsis    bool          `yaml:"ellipsis,omitempty"`
	Active      bool          `yaml:"active,omitempty"`
	Role        string        `yaml:"role,omitempty"`
	Badge       *domain.Badge `yaml:"badge,omitempty"`
}

func (i ActionListItem) Classes() ClassNames {
	return ItemClasses(i)
}

// ImageBackgroundStyle is the inline style of the item thumbnail. The URL is
// written as a quoted CSS string so it can hold any character.
func (i ActionListItem) ImageBackgroundStyle() template.CSS {
	if i.Image == "" {
		return ""
	}
	return template.CSS(`background-image: url("` + cssString(i.Image) + `")`)
}

// cssString escapes s for use between double quotes in CSS.
func cssString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, "\\%x ", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayText is the item text, with a trailing ellipsis when requested.
func (i ActionListItem) DisplayText() string {
	if i.Ellipsis {
		return i.Text + "…"
	}
	return i.Text
}

func (i ActionListItem) action() domain.Action {
	return domain.Action{
		Text:        i.Text,
		Icon:        i.Icon,
		Disabled:    i.Disabled,
		Destructive: i.Destructive,
		URL:         i.URL,
	}
}

type ActionList struct {
	Items []ActionListItem `yaml:"items"`
}

// Activate builds the event for the item with the given key.
func (l ActionList) Activate(key string) (*domain.ActionEvent, error) {
	for i, item := range l.Items {
		if ItemKey(i) != key {
			continue
		}
		if item.Disabled {
			return nil, fmt.Errorf("%w: %q", ErrActionDisabled, key)
		}
		return newEvent("action-list-item", "", key, item.action()), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, key)
}

type itemView struct {
	Classes    string
	Role       string
	Active     bool
	Disabled   bool
	Key        string
	URL        string
	Text       string
	HelpText   string
	Icon       template.HTML
	ImageStyle template.CSS
	Badge      *badgeView
}

type badgeView struct {
	Classes string
	Content string
}
