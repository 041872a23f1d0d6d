package token

import (
	"time"
)

type EventType string

const (
	EventTransfer EventType = "Transfer"
	EventMint     EventType = "Mint"
	EventBurn     EventType = "Burn"
	EventApproval EventType = "Approval"
	EventDestruct EventType = "Destruct"
)

type Event struct {
	Type      EventType              `json:"type"`
	From      string                 `json:"from,omitempty"`
	To        string                 `json:"to,omitempty"`
	Amount    uint64                 `json:"amount"`
	Timestamp time.Time              `json:"timestamp"`
	TxHash    string                 `json:"tx_hash"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// emitEvent appends to the in-memory log. Callers hold t.mu.
func (t *Token) emitEvent(event Event) {
	t.events = append(t.events, event)
}

// EmitDestruct records a destruct notification on the event log. The timed
// contract calls this once the shutdown preconditions pass.
func (t *Token) EmitDestruct(at time.Time, metadata map[string]interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.emitEvent(Event{
		Type:      EventDestruct,
		Timestamp: at,
		TxHash:    t.generateTxHash("destruct", t.Symbol, 0),
		Metadata:  metadata,
	})
}

// Events returns a copy of the event log.
func (t *Token) Events() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	events := make([]Event, len(t.events))
	copy(events, t.events)
	return events
}

// EventsByType returns events filtered by type.
func (t *Token) EventsByType(eventType EventType) []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var filtered []Event
	for _, event := range t.events {
		if event.Type == eventType {
			filtered = append(filtered, event)
		}
	}
	return filtered
}
