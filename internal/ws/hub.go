// internal/ws/hub.go
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"lingvo-service/internal/domain/payment"

	"go.uber.org/zap"
)

// Hub pushes payment status events to connected Mini App clients. A user may
// hold several connections (multiple devices); events go to all of them.
type Hub struct {
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	events     chan userEvent

	logger *zap.Logger
}

type userEvent struct {
	userID  int64
	payload []byte
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan userEvent, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case ev := <-h.events:
			h.deliver(ev)
		}
	}
}

// NotifyPayment queues a payment status event for one user. Safe to call from
// any goroutine; drops the event if the hub queue is full.
func (h *Hub) NotifyPayment(userID int64, event payment.StatusEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal payment event", zap.Error(err))
		return
	}

	select {
	case h.events <- userEvent{userID: userID, payload: payload}:
	default:
		h.logger.Warn("event queue full, dropping payment event",
			zap.Int64("user_id", userID),
			zap.String("payment_id", event.PaymentID),
		)
	}
}

// ConnectedClients reports the number of open connections for a user.
func (h *Hub) ConnectedClients(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info("websocket client connected",
		zap.Int64("user_id", client.userID),
		zap.Int("total", h.totalClients()),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	client.close()
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info("websocket client disconnected",
		zap.Int64("user_id", client.userID),
		zap.Int("total", h.totalClients()),
	)
}

func (h *Hub) deliver(ev userEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[ev.userID] {
		client.send(ev.payload)
	}
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.close()
		}
	}
	h.clients = make(map[int64]map[*Client]bool)
}
