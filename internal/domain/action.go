package domain

// Action describes a clickable page or list action.
type Action struct {
	Text        string `json:"text" yaml:"text"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Disabled    bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Destructive bool   `json:"destructive,omitempty" yaml:"destructive,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Badge is the status badge of an action list item.
type Badge struct {
	Status  string `json:"status" yaml:"status"`
	Content string `json:"content" yaml:"content"`
}
