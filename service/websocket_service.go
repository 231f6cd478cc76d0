package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// WebSocketService streams answers over a websocket connection. Each
// answer is delivered as chunk frames followed by a sources frame and
// a done frame.
type WebSocketService struct {
	rag      *RAGService
	upgrader websocket.Upgrader
}

func NewWebSocketService(rag *RAGService) *WebSocketService {
	return &WebSocketService{
		rag: rag,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(message, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketPong})

		case types.TypeWebsocketQuery:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			var payload types.WebsocketQueryPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			s.streamAnswer(r.Context(), conn, payload)

		default:
			log.Println("Invalid message type:", req.Type)
		}
	}
}

func (s *WebSocketService) streamAnswer(ctx context.Context, conn *websocket.Conn, payload types.WebsocketQueryPayload) {
	sources, err := s.rag.StreamQuery(ctx, payload.Question, func(fragment string) {
		conn.WriteJSON(types.WebsocketResponse{
			Type:    types.TypeWebsocketChunk,
			Payload: types.WebsocketChunkPayload{Content: fragment},
		})
	}, payload.Language, payload.AccuracyMode, payload.ContextWindow)

	if err != nil {
		s.writeError(conn, err.Error())
		return
	}

	conn.WriteJSON(types.WebsocketResponse{
		Type:    types.TypeWebsocketSources,
		Payload: types.WebsocketSourcesPayload{Sources: sources},
	})
	conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketDone})
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	conn.WriteJSON(types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: map[string]string{"message": message},
	})
}

func (s *WebSocketService) Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
