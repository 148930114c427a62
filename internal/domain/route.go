package domain

// RouteDefinition is one node of the route hierarchy.
type RouteDefinition struct {
	Name string `json:"name" mapstructure:"name" yaml:"name"` // dot separated, e.g. "home.the-beginning"
	Path string `json:"path" mapstructure:"path" yaml:"path"` // relative to the parent, e.g. "really/:id"
}

// Segment is a single path component of a route.
type Segment struct {
	Value   string `json:"value"`
	Dynamic bool   `json:"dynamic"`
}
