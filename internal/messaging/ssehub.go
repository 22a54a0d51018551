package messaging

import (
	"log"
	"sync"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
)

type SSEClient struct {
	UserIdentifier string
	Channel        chan *model.Notification
}

// SSEHub fans notifications out to connected clients, keyed by user
// identifier. A user can hold several connections at once.
type SSEHub struct {
	clients    map[string][]*SSEClient
	register   chan *SSEClient
	unregister chan *SSEClient
	broadcast  chan *model.Notification
	mu         sync.RWMutex
}

func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients:    make(map[string][]*SSEClient),
		register:   make(chan *SSEClient),
		unregister: make(chan *SSEClient),
		broadcast:  make(chan *model.Notification, 100),
	}
}

func (h *SSEHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserIdentifier] = append(h.clients[client.UserIdentifier], client)
			h.mu.Unlock()
			log.Printf("sse: client registered for %s", client.UserIdentifier)

		case client := <-h.unregister:
			h.mu.Lock()
			userClients := h.clients[client.UserIdentifier]
			for i, c := range userClients {
				if c == client {
					h.clients[client.UserIdentifier] = append(userClients[:i], userClients[i+1:]...)
					break
				}
			}
			h.mu.Unlock()
			close(client.Channel)
			log.Printf("sse: client unregistered for %s", client.UserIdentifier)

		case notification := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[notification.UserIdentifier]
			for _, client := range clients {
				select {
				case client.Channel <- notification:
				default:
					// channel full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *SSEHub) RegisterClient(userIdentifier string) *SSEClient {
	client := &SSEClient{
		UserIdentifier: userIdentifier,
		Channel:        make(chan *model.Notification, 10),
	}
	h.register <- client
	return client
}

func (h *SSEHub) UnregisterClient(client *SSEClient) {
	h.unregister <- client
}

func (h *SSEHub) SendToUser(notification *model.Notification) {
	h.broadcast <- notification
}
