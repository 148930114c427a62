package page

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"polaris/components/internal/component"
	"polaris/components/internal/domain"
)

// pageFile is the YAML form of a page definition. Content is trusted markup
// written by whoever deploys the page files.
type pageFile struct {
	Name             string              `yaml:"name"`
	Title            string              `yaml:"title"`
	FullWidth        bool                `yaml:"full_width"`
	SingleColumn     bool                `yaml:"single_column"`
	PrimaryAction    *domain.Action      `yaml:"primary_action"`
	SecondaryActions []domain.Action     `yaml:"secondary_actions"`
	Breadcrumbs      []domain.Breadcrumb `yaml:"breadcrumbs"`
	Content          string              `yaml:"content"`
}

// Catalog is a read-only set of pages keyed by name.
type Catalog struct {
	pages map[string]component.Page
}

func NewCatalog(pages ...component.Page) (*Catalog, error) {
	c := &Catalog{pages: make(map[string]component.Page, len(pages))}
	for _, p := range pages {
		if _, dup := c.pages[p.Name]; dup {
			return nil, fmt.Errorf("duplicate page %q", p.Name)
		}
		c.pages[p.Name] = p
	}
	return c, nil
}

// Parse decodes a single page definition. Unknown keys are rejected.
func Parse(data []byte) (component.Page, error) {
	var f pageFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return component.Page{}, fmt.Errorf("failed to decode page: %w", err)
	}

	if strings.TrimSpace(f.Title) == "" {
		return component.Page{}, fmt.Errorf("page %q has no title", f.Name)
	}
	for i, b := range f.Breadcrumbs {
		if b.RouteName == "" {
			return component.Page{}, fmt.Errorf("page %q breadcrumb #%d has no route", f.Name, i+1)
		}
	}

	return component.Page{
		Name:             f.Name,
		Title:            f.Title,
		FullWidth:        f.FullWidth,
		SingleColumn:     f.SingleColumn,
		PrimaryAction:    f.PrimaryAction,
		SecondaryActions: f.SecondaryActions,
		Breadcrumbs:      f.Breadcrumbs,
		Content:          template.HTML(f.Content),
	}, nil
}

// LoadDir reads every *.yaml and *.yml file of dir. A page without a name is
// named after its file.
func LoadDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages dir: %w", err)
	}

	var pages []component.Page
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read page %s: %w", entry.Name(), err)
		}

		p, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		if p.Name == "" {
			p.Name = strings.TrimSuffix(entry.Name(), ext)
		}
		pages = append(pages, p)
	}

	log.Infof("📄 Loaded %d pages from %s", len(pages), dir)
	return NewCatalog(pages...)
}

func (c *Catalog) Get(name string) (component.Page, bool) {
	p, ok := c.pages[name]
	return p, ok
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.pages))
	for name := range c.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Icons lists the distinct action icons used across all pages.
func (c *Catalog) Icons() []string {
	seen := map[string]bool{}
	var icons []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			icons = append(icons, name)
		}
	}

	for _, name := range c.Names() {
		p := c.pages[name]
		if p.PrimaryAction != nil {
			add(p.PrimaryAction.Icon)
		}
		for _, a := range p.SecondaryActions {
			add(a.Icon)
		}
	}
	return icons
}
