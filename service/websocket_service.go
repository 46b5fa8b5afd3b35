package service

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tieubaoca/docstudy-be/types"
)

// WebSocketService streams chat answers over a websocket connection.
// Each delta from the generation gateway is forwarded as its own frame;
// the turn is recorded in chat history only after the stream completes.
type WebSocketService struct {
	study    *StudyService
	upgrader websocket.Upgrader
}

func NewWebSocketService(study *StudyService) *WebSocketService {
	return &WebSocketService{
		study: study,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		userID = r.URL.Query().Get("user_id")
	}
	if userID == "" {
		http.Error(w, "user id is required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "invalid request")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketChat:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			var payload types.WebSocketChatPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}

			turn, err := s.study.ChatStream(r.Context(), userID, payload.DocumentID, payload.Question, func(delta string) {
				conn.WriteJSON(types.WebSocketResponse{
					Type:    types.TypeWebsocketDelta,
					Payload: types.WebSocketDeltaPayload{Delta: delta},
				})
			})
			if err != nil {
				log.Println("Chat stream error:", err)
				s.writeError(conn, err.Error())
				continue
			}
			conn.WriteJSON(types.WebSocketResponse{
				Type: types.TypeWebsocketDone,
				Payload: types.WebSocketDonePayload{
					Answer:         turn.Answer,
					RelevantChunks: turn.RelevantChunks,
				},
			})

		case types.TypeWebsocketPing:
			conn.WriteJSON(types.WebSocketResponse{
				Type: types.TypeWebsocketPong,
			})

		default:
			s.writeError(conn, "invalid message type")
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: message,
	}); err != nil {
		log.Println("Write error:", err)
	}
}

func (s *WebSocketService) Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
