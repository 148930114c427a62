package component

import "html/template"

type Button struct {
	Text        string
	Primary     bool
	Destructive bool
	Disabled    bool
	Plain       bool
	Icon        string
	Key         string
}

type buttonView struct {
	Classes  string
	Text     string
	Disabled bool
	Key      string
	Icon     template.HTML
}
