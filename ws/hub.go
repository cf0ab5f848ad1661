package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// The hub keeps every connected dashboard client and fans out change events
// so the SPA can refetch KPIs without polling.

// Client is one WebSocket connection.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub manages all connected clients.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

// Notify broadcasts a resource-change event to every connected client.
// Slow or dead clients are dropped rather than blocking the caller.
func (h *Hub) Notify(event string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		log.Printf("ws: failed to encode %s event: %v", event, err)
		return
	}
	h.Broadcast <- msg
}
