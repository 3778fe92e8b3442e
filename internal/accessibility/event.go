// Package accessibility turns raw UI events from payment apps into eligible,
// bounded text snapshots.
package accessibility

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/paysnap/internal/model"
)

// EventKind is the kind of accessibility event reported by the host.
type EventKind string

// Recognized event kinds. Everything else is ignored.
const (
	WindowStateChanged   EventKind = "window_state_changed"
	WindowContentChanged EventKind = "window_content_changed"
)

// Event is a single UI event together with the tree of the active window.
type Event struct {
	Root      *model.UINode `json:"root,omitempty"`
	Kind      EventKind     `json:"kind"`
	PackageID string        `json:"package"`
}

// DecodeEvent parses one JSON encoded event as written by the replay format.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	return ev, nil
}
