package domain

import (
	"encoding/json"
	"time"
)

// ActionEvent is emitted when a user activates an action.
type ActionEvent struct {
	ID        string            `json:"id"`
	Component string            `json:"component"` // page, page-actions, action-list-item
	Page      string            `json:"page,omitempty"`
	Key       string            `json:"key"`
	Text      string            `json:"text"`
	Payload   map[string]string `json:"payload,omitempty"`
	At        time.Time         `json:"at"`
}

func (e *ActionEvent) EventType() string {
	return "ActionEvent"
}

func (e *ActionEvent) EventValue() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalEvent(data []byte) (*ActionEvent, error) {
	var e ActionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
