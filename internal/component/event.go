package component

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"polaris/components/internal/domain"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrActionDisabled = errors.New("action is disabled")
)

const PrimaryKey = "primary"

func SecondaryKey(i int) string {
	return fmt.Sprintf("secondary-%d", i)
}

func ItemKey(i int) string {
	return fmt.Sprintf("item-%d", i)
}

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

func newEvent(component, page, key string, a domain.Action) *domain.ActionEvent {
	event := &domain.ActionEvent{
		ID:        uuid.NewString(),
		Component: component,
		Page:      page,
		Key:       key,
		Text:      a.Text,
		At:        now(),
	}
	if a.URL != "" {
		event.Payload = map[string]string{"url": a.URL}
	}
	return event
}

// activate looks up an action by key among a primary action and a list of
// secondary actions.
func activate(component, page, key string, primary *domain.Action, secondary []domain.Action) (*domain.ActionEvent, error) {
	var action *domain.Action
	if key == PrimaryKey {
		action = primary
	} else {
		for i := range secondary {
			if SecondaryKey(i) == key {
				action = &secondary[i]
				break
			}
		}
	}

	if action == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, key)
	}
	if action.Disabled {
		return nil, fmt.Errorf("%w: %q", ErrActionDisabled, key)
	}

	return newEvent(component, page, key, *action), nil
}
