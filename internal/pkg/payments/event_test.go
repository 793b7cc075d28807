package payments

import (
	"errors"
	"testing"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantKind   EventKind
		wantExtID  string
		wantErr    error
	}{
		{
			name:      "succeeded",
			body:      `{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`,
			wantKind:  EventIntentSucceeded,
			wantExtID: "pi_1",
		},
		{
			name:      "failed",
			body:      `{"id":"evt_2","type":"payment_intent.payment_failed","data":{"object":{"id":"pi_2"}}}`,
			wantKind:  EventIntentFailed,
			wantExtID: "pi_2",
		},
		{
			name:     "unrecognized type acknowledged",
			body:     `{"id":"evt_3","type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`,
			wantKind: EventUnrecognized,
		},
		{
			name:    "invalid json",
			body:    `{]`,
			wantErr: ErrMalformedPayload,
		},
		{
			name:    "missing type",
			body:    `{"id":"evt_4","data":{"object":{"id":"pi_4"}}}`,
			wantErr: ErrMalformedPayload,
		},
		{
			name:    "payment event without intent id",
			body:    `{"id":"evt_5","type":"payment_intent.succeeded","data":{"object":{}}}`,
			wantErr: ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := parseEvent([]byte(tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEvent failed: %v", err)
			}
			if event.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v", event.Kind, tt.wantKind)
			}
			if event.ExternalID != tt.wantExtID {
				t.Fatalf("ExternalID = %q, want %q", event.ExternalID, tt.wantExtID)
			}
		})
	}
}
