package events

import (
	"context"
	"errors"

	"polaris/components/internal/domain"
)

// Emitter delivers action events to whatever the host wired up.
type Emitter interface {
	Emit(ctx context.Context, event *domain.ActionEvent) error
}

type multiEmitter []Emitter

// Multi emits to every emitter, even when an earlier one fails.
func Multi(emitters ...Emitter) Emitter {
	return multiEmitter(emitters)
}

func (m multiEmitter) Emit(ctx context.Context, event *domain.ActionEvent) error {
	var errs []error
	for _, e := range m {
		if err := e.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
