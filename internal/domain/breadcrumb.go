package domain

// Breadcrumb is one link of a navigation trail.
type Breadcrumb struct {
	Content   string `json:"content" yaml:"content"`
	RouteName string `json:"route" yaml:"route"`
	Params    any    `json:"models,omitempty" yaml:"models,omitempty"` // scalar or ordered list
}
