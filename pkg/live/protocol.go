package live

import (
	"encoding/json"
	"fmt"

	"github.com/kbc-construction/site/pkg/ui"
)

// Message types exchanged over the live socket. Every frame is a JSON object
// with a "type" field.
const (
	// Client to server.
	TypeHello     = "hello"
	TypeIntersect = "intersect"

	// Server to client.
	TypeObserve   = "observe"
	TypeUnobserve = "unobserve"
	TypePatch     = "patch"
	TypeSlide     = "slide"
)

// ClientMessage is a decoded client frame.
type ClientMessage struct {
	Type string `json:"type"`

	// Observer is set on hello: whether the browser has IntersectionObserver.
	Observer bool `json:"observer,omitempty"`

	// Region and Ratio are set on intersect.
	Region string  `json:"region,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
}

// ObservedRegion tells the client which element to watch and at what
// threshold.
type ObservedRegion struct {
	ID        string  `json:"id"`
	Threshold float64 `json:"threshold"`
}

// ObserveMessage asks the client to start watching regions.
type ObserveMessage struct {
	Type    string           `json:"type"`
	Regions []ObservedRegion `json:"regions"`
}

// UnobserveMessage asks the client to stop watching a region.
type UnobserveMessage struct {
	Type   string `json:"type"`
	Region string `json:"region"`
}

// PatchMessage carries DOM updates.
type PatchMessage struct {
	Type    string     `json:"type"`
	Patches []ui.Patch `json:"patches"`
}

// SlideMessage selects the visible hero slide.
type SlideMessage struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// DecodeClientMessage parses a client frame.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("live: decode message: %w", err)
	}
	switch msg.Type {
	case TypeHello, TypeIntersect:
		return msg, nil
	default:
		return ClientMessage{}, fmt.Errorf("live: unknown message type %q", msg.Type)
	}
}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("live: encode message: %w", err)
	}
	return data, nil
}
