package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// storeEvent is broadcast to connected admin clients after a successful
// mutation so the panel can refresh without polling.
type storeEvent struct {
	Event  string `json:"event"`
	ID     uint   `json:"id,omitempty"`
	UserID uint   `json:"user_id,omitempty"`
}

type eventHub struct {
	mutex   sync.Mutex
	clients map[*websocket.Conn]bool
	events  chan storeEvent
}

func newEventHub() *eventHub {
	return &eventHub{
		clients: make(map[*websocket.Conn]bool),
		events:  make(chan storeEvent, 100), // Buffered channel to prevent blocking
	}
}

// publish queues an event without blocking the request; delivery is
// best-effort and the event is dropped when the queue is full.
func (h *eventHub) publish(ev storeEvent) {
	select {
	case h.events <- ev:
	default:
		log.Println("Event queue full, dropping:", ev.Event)
	}
}

func (h *eventHub) run() {
	for ev := range h.events {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		h.mutex.Lock()
		for client := range h.clients {
			if err := client.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mutex.Unlock()
	}
}

func (h *eventHub) eventFeed() fiber.Handler {
	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		h.mutex.Lock()
		h.clients[conn] = true
		h.mutex.Unlock()
		log.Println("Client connected:", conn.RemoteAddr())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				h.mutex.Lock()
				delete(h.clients, conn)
				h.mutex.Unlock()
				log.Println("Client disconnected:", conn.RemoteAddr())
				return
			}
		}
	})
}
