package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgResponseScored MessageType = "response_scored"
	MsgStatsUpdate    MessageType = "stats_update"
	MsgError          MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans scoring events out to admin dashboard connections, grouped per
// questionnaire. Several admins can watch the same questionnaire at once.
type Hub struct {
	// questionnaireID -> connection set
	conns map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one dashboard WebSocket connection
type Connection struct {
	QuestionnaireID string
	AdminID         string
	Send            chan []byte
	Hub             *Hub
}

// BroadcastMessage is a message to fan out to one questionnaire's dashboards
type BroadcastMessage struct {
	QuestionnaireID string
	Message         *Message
}

// NewHub creates a new WebSocket hub and starts its run loop
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
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
			if h.conns[conn.QuestionnaireID] == nil {
				h.conns[conn.QuestionnaireID] = make(map[*Connection]bool)
			}
			h.conns[conn.QuestionnaireID][conn] = true
			h.mu.Unlock()
			log.Printf("Dashboard %s connected for questionnaire %s", conn.AdminID, conn.QuestionnaireID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.QuestionnaireID]; ok {
				if set[conn] {
					delete(set, conn)
					close(conn.Send)
					log.Printf("Dashboard %s disconnected from questionnaire %s", conn.AdminID, conn.QuestionnaireID)
				}
				if len(set) == 0 {
					delete(h.conns, conn.QuestionnaireID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.QuestionnaireID] {
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

// BroadcastToDashboard sends a message to every dashboard watching a
// questionnaire (implements service.Broadcaster)
func (h *Hub) BroadcastToDashboard(questionnaireID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		QuestionnaireID: questionnaireID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
