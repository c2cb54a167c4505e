package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/infrastructure/firebase"
	ws "campusmarket/internal/infrastructure/websocket"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	manager             *ws.Manager
	authClient          *firebase.FirebaseAuthClient
	conversationUseCase *usecase.ConversationUseCase
}

func NewWebSocketHandler(manager *ws.Manager, authClient *firebase.FirebaseAuthClient, conversationUseCase *usecase.ConversationUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		manager:             manager,
		authClient:          authClient,
		conversationUseCase: conversationUseCase,
	}
}

type messagesFrame struct {
	Type           string            `json:"type"`
	ConversationID string            `json:"conversation_id"`
	Messages       []*entity.Message `json:"messages"`
}

// StreamConversation upgrades the connection and pushes the full ordered
// message list on every change until the peer disconnects. Browser
// WebSocket clients cannot set headers, so the ID token arrives as a
// query parameter.
func (h *WebSocketHandler) StreamConversation(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("Missing token", nil))
	}

	uid, err := h.authClient.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	conversationID := c.Param("id")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &ws.Client{
		UserID:         uid,
		ConversationID: conversationID,
		Conn:           conn,
		Send:           make(chan []byte, 16),
	}

	cancel, err := h.conversationUseCase.Subscribe(c.Request().Context(), uid, conversationID, func(messages []*entity.Message) {
		payload, err := json.Marshal(messagesFrame{
			Type:           "messages",
			ConversationID: conversationID,
			Messages:       messages,
		})
		if err != nil {
			logger.Error("Failed to marshal message frame: %v", err)
			return
		}
		client.Push(payload)
	})
	if err != nil {
		conn.Close()
		return nil
	}
	defer cancel()

	h.manager.Register <- client

	go client.WritePump()
	client.ReadPump(h.manager)

	return nil
}
