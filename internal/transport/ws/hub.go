package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgQuestionAsked      MessageType = "question_asked"
	MsgInterviewCompleted MessageType = "interview_completed"
	MsgInterviewCancelled MessageType = "interview_cancelled"
	MsgError              MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages watcher connections per interview. Watchers are recruiter
// dashboards observing interview lifecycle events; no media flows here.
type Hub struct {
	// interviewID -> connections
	watchers map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one watcher's WebSocket connection
type Connection struct {
	InterviewID string
	OwnerID     string
	Send        chan []byte
	Hub         *Hub
}

// BroadcastMessage is a message to broadcast to an interview's watchers
type BroadcastMessage struct {
	InterviewID string
	Message     *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.InterviewID] == nil {
				h.watchers[conn.InterviewID] = make(map[*Connection]bool)
			}
			h.watchers[conn.InterviewID][conn] = true
			h.mu.Unlock()
			log.Printf("Watcher %s connected to interview %s", conn.OwnerID, conn.InterviewID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.InterviewID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.watchers, conn.InterviewID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("Watcher %s disconnected from interview %s", conn.OwnerID, conn.InterviewID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.watchers[msg.InterviewID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToWatchers sends an event to all watchers of an interview
// (implements service.Broadcaster).
func (h *Hub) BroadcastToWatchers(interviewID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		InterviewID: interviewID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
