// internal/ws/hub_test.go
package ws

import (
	"context"
	"testing"
	"time"

	"lingvo-service/internal/domain/payment"

	"go.uber.org/zap"
)

func paidEvent(id string) payment.StatusEvent {
	return payment.StatusEvent{
		Type:      "payment_status",
		PaymentID: id,
		Status:    payment.StatusPaid,
		Product:   "month",
	}
}

// A client that never drains its outbox must not wedge the hub: delivery to
// it drops the connection, and the hub keeps servicing registrations.
func TestHubSurvivesSlowConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	stalled := NewClient(hub, nil, 1, zap.NewNop())
	hub.register <- stalled

	// One more event than the outbox holds forces the overflow path.
	for i := 0; i <= cap(stalled.outbox); i++ {
		hub.NotifyPayment(1, paidEvent("p1"))
	}

	registered := make(chan struct{})
	go func() {
		hub.register <- NewClient(hub, nil, 2, zap.NewNop())
		close(registered)
	}()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped accepting registrations after delivering to a stalled client")
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectedClients(1) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("stalled client was never dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubDeliversToAllUserConnections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	first := NewClient(hub, nil, 7, zap.NewNop())
	second := NewClient(hub, nil, 7, zap.NewNop())
	other := NewClient(hub, nil, 8, zap.NewNop())
	hub.register <- first
	hub.register <- second
	hub.register <- other

	hub.NotifyPayment(7, paidEvent("p2"))

	for _, c := range []*Client{first, second} {
		select {
		case payload := <-c.outbox:
			if len(payload) == 0 {
				t.Error("empty event payload")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("event not delivered to one of the user's connections")
		}
	}

	select {
	case <-other.outbox:
		t.Fatal("event leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}
}
