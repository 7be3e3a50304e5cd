package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestNewEnvelope(t *testing.T) {
	env, err := NewEnvelope("storefront-api", EventOrderStatusChanged, "order-1",
		OrderStatusChangedPayload{OrderID: "order-1", From: "placed", To: "processing"})
	if err != nil {
		t.Fatalf("new envelope: %v", err)
	}
	if env.EventID == "" || env.EventVersion != 1 || env.CorrelationID != "order-1" {
		t.Fatalf("unexpected envelope header: %+v", env)
	}

	var p OrderStatusChangedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if p.To != "processing" {
		t.Fatalf("payload.To = %q", p.To)
	}
}

func TestMemoryPublisherKeepsOrder(t *testing.T) {
	p := &MemoryPublisher{}
	for _, typ := range []string{EventOrderCreated, EventOrderStatusChanged} {
		env, _ := NewEnvelope("test", typ, "o", struct{}{})
		if err := p.Publish(context.Background(), env); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	got := p.Events()
	if len(got) != 2 || got[0].EventType != EventOrderCreated || got[1].EventType != EventOrderStatusChanged {
		t.Fatalf("unexpected events: %+v", got)
	}
}
