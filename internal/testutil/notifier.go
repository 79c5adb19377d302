package testutil

import (
	"context"
	"sync"
)

// NotifierEvent is one captured notification
type NotifierEvent struct {
	Event   string
	Payload map[string]any
}

// CapturingNotifier implements webhook.Notifier and records every
// notification synchronously.
type CapturingNotifier struct {
	mu     sync.Mutex
	events []NotifierEvent
}

// NewCapturingNotifier creates a new capturing notifier
func NewCapturingNotifier() *CapturingNotifier {
	return &CapturingNotifier{}
}

func (n *CapturingNotifier) Notify(ctx context.Context, event string, payload map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, NotifierEvent{Event: event, Payload: payload})
}

// Events returns a snapshot of the captured notifications
func (n *CapturingNotifier) Events() []NotifierEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]NotifierEvent, len(n.events))
	copy(out, n.events)
	return out
}

// Clear drops all captured notifications
func (n *CapturingNotifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}
