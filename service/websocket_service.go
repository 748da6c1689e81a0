package service

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/medicare-vn/medicare-be/types"
	"github.com/sirupsen/logrus"
)

// WebSocketService serves the chat over a websocket connection. Each chat
// frame runs through the same provider chain as the HTTP endpoint.
type WebSocketService struct {
	chat     *ChatService
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

func NewWebSocketService(chat *ChatService, log *logrus.Logger) *WebSocketService {
	return &WebSocketService{
		chat: chat,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
		log: log,
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("websocket upgrade failed")
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
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.WithError(err).Warn("websocket read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			s.writeResponse(conn, types.WebSocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "invalid request",
			})
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			s.writeResponse(conn, types.WebSocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketChat:
			s.handleChatPayload(r, conn, req.Payload)
		default:
			s.writeResponse(conn, types.WebSocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "unknown message type",
			})
		}
	}
}

func (s *WebSocketService) handleChatPayload(r *http.Request, conn *websocket.Conn, raw json.RawMessage) {
	var payload types.WebSocketChatPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.writeResponse(conn, types.WebSocketResponse{
			Type:    types.TypeWebsocketError,
			Payload: "invalid chat payload",
		})
		return
	}

	s.writeResponse(conn, types.WebSocketResponse{
		Type:    types.TypeWebsocketProcessing,
		Payload: "Đang xử lý câu hỏi của bạn...",
	})

	resp, provider := s.chat.Respond(r.Context(), payload.Message, payload.History, payload.ProductContext)
	s.writeResponse(conn, types.WebSocketResponse{
		Type: types.TypeWebsocketChat,
		Payload: types.ChatResponse{
			Text:     resp.Text,
			Products: resp.Products,
			Provider: provider,
		},
	})
}

func (s *WebSocketService) writeResponse(conn *websocket.Conn, resp types.WebSocketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		s.log.WithError(err).Warn("websocket write failed")
	}
}
