// internal/notifications/hub.go

package notifications

import (
	"context"
	"log"
	"sync"
)

// Hub maintains active websocket connections for toast delivery
type Hub struct {
	// Registered clients, one connection per user
	clients    map[int64]*Client
	clientsMux sync.RWMutex

	// Toast delivery channel
	deliveries chan delivery

	// Register/unregister clients
	register   chan *Client
	unregister chan *Client

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

type delivery struct {
	userID  int64
	payload []byte
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:    make(map[int64]*Client),
		deliveries: make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (h *Hub) Run() {
	defer h.cleanup()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliveries:
			h.deliver(d)

		case <-h.ctx.Done():
			return
		}
	}
}

// Shutdown stops the hub loop and closes all connections
func (h *Hub) Shutdown() {
	h.cancel()
}

// Push queues a payload for one user. Non-blocking: if the hub queue is
// full the toast is dropped, since toasts are ephemeral by nature.
func (h *Hub) Push(userID int64, payload []byte) {
	select {
	case h.deliveries <- delivery{userID: userID, payload: payload}:
	default:
		log.Printf("notifications: delivery queue full, dropping toast for user %d", userID)
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	// Remove old connection for the same user
	if oldClient, exists := h.clients[client.userID]; exists {
		oldClient.Close()
	}

	h.clients[client.userID] = client
	log.Printf("User %d connected. Total clients: %d", client.userID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	if current, exists := h.clients[client.userID]; exists && current == client {
		client.Close()
		delete(h.clients, client.userID)
		log.Printf("User %d disconnected. Total clients: %d", client.userID, len(h.clients))
	}
}

func (h *Hub) deliver(d delivery) {
	h.clientsMux.RLock()
	client, exists := h.clients[d.userID]
	h.clientsMux.RUnlock()

	if !exists {
		return
	}

	select {
	case client.send <- d.payload:
	default:
		// Unregister if the client stopped draining its channel
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) cleanup() {
	h.clientsMux.Lock()
	for _, client := range h.clients {
		client.Close()
	}
	h.clients = make(map[int64]*Client)
	h.clientsMux.Unlock()
}
