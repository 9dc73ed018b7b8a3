package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/chat"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Question string `json:"question"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type string `json:"type"` // "response" or "error"
	*chat.Response
	Error string `json:"error,omitempty"`
}

// handleWebSocket serves the same question/answer exchange as POST /chat
// over a persistent connection. Each message is independent; the engine
// keeps no conversation state.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "invalid message format")
			continue
		}

		if strings.TrimSpace(req.Question) == "" {
			s.sendWSError(conn, "Question missing")
			continue
		}

		resp := s.chat.Respond(r.Context(), req.Question)
		if err := conn.WriteJSON(wsResponse{Type: "response", Response: resp}); err != nil {
			log.Printf("server: websocket write: %v", err)
		}
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(wsResponse{Type: "error", Error: message}); err != nil {
		log.Printf("server: websocket write error: %v", err)
	}
}
