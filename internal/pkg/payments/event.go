package payments

import "encoding/json"

// EventKind is the closed set of webhook event kinds this service acts on.
// Everything else maps to EventUnrecognized and is acknowledged untouched,
// which keeps us forward-compatible with processor event types we do not
// handle yet.
type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventIntentSucceeded
	EventIntentFailed
)

// Event is a verified, parsed webhook event.
type Event struct {
	Kind       EventKind
	EventID    string // processor-assigned event id, used for audit dedup
	Type       string // raw processor event type string
	ExternalID string // payment intent id, set for payment events only
}

type wireEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

func parseEvent(rawBody []byte) (*Event, error) {
	var we wireEvent
	if err := json.Unmarshal(rawBody, &we); err != nil {
		return nil, ErrMalformedPayload
	}
	if we.Type == "" {
		return nil, ErrMalformedPayload
	}

	event := &Event{
		Kind:    EventUnrecognized,
		EventID: we.ID,
		Type:    we.Type,
	}

	switch we.Type {
	case "payment_intent.succeeded":
		event.Kind = EventIntentSucceeded
	case "payment_intent.payment_failed":
		event.Kind = EventIntentFailed
	default:
		return event, nil
	}

	// Payment events must reference the affected intent.
	if we.Data.Object.ID == "" {
		return nil, ErrMalformedPayload
	}
	event.ExternalID = we.Data.Object.ID

	return event, nil
}
