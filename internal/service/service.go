package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"polaris/components/internal/component"
	"polaris/components/internal/domain"
	"polaris/components/internal/events"
	"polaris/components/internal/routing"
)

var ErrPageNotFound = errors.New("page not found")

// Pages is where the service looks pages up by name.
type Pages interface {
	Get(name string) (component.Page, bool)
	Names() []string
}

type Service struct {
	pages    Pages
	renderer *component.Renderer
	resolver *routing.Resolver
	emitter  events.Emitter
}

func NewService(
	pages Pages,
	renderer *component.Renderer,
	resolver *routing.Resolver,
	emitter events.Emitter,
) *Service {
	return &Service{
		pages:    pages,
		renderer: renderer,
		resolver: resolver,
		emitter:  emitter,
	}
}

func (s *Service) PageNames() []string {
	return s.pages.Names()
}

// RenderPage writes the named page as HTML. Nothing is written when the page
// fails to render.
func (s *Service) RenderPage(ctx context.Context, name string, w io.Writer) error {
	p, ok := s.pages.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderPage(ctx, &buf, p); err != nil {
		return err
	}

	log.Debugf("Rendered page %s (%d bytes)", name, buf.Len())
	_, err := buf.WriteTo(w)
	return err
}

// Activate builds the event for an action of the named page and hands it to
// the emitter.
func (s *Service) Activate(ctx context.Context, name, key string) (*domain.ActionEvent, error) {
	p, ok := s.pages.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}

	event, err := p.Activate(key)
	if err != nil {
		return nil, err
	}

	if err := s.emitter.Emit(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to emit event %s: %w", event.ID, err)
	}

	log.Infof("⚡ Page %s action %s activated (event %s)", name, key, event.ID)
	return event, nil
}

func (s *Service) Resolve(routeName string, params []string) (string, error) {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p
	}
	return s.resolver.Resolve(routeName, args...)
}
