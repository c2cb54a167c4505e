package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/usecase"
	"campusmarket/pkg/response"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
	}
}

type startConversationRequest struct {
	ListingID      string `json:"listing_id" validate:"required"`
	RecipientUID   string `json:"recipient_uid"`
	InitialMessage string `json:"initial_message"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// StartConversation gets or creates the thread for (listing, caller,
// recipient). 201 only when a new conversation was created.
func (h *ConversationHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userUID := c.Get("uid").(string)

	conversation, err := h.conversationUseCase.Start(c.Request().Context(), userUID, usecase.StartConversationInput{
		ListingID:      req.ListingID,
		RecipientUID:   req.RecipientUID,
		InitialMessage: req.InitialMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	if conversation.Created {
		return response.Created(c, conversation)
	}
	return response.Success(c, conversation)
}

func (h *ConversationHandler) ListConversations(c echo.Context) error {
	userUID := c.Get("uid").(string)

	conversations, err := h.conversationUseCase.ListForUser(c.Request().Context(), userUID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *ConversationHandler) GetConversation(c echo.Context) error {
	userUID := c.Get("uid").(string)

	conversation, err := h.conversationUseCase.GetByID(c.Request().Context(), userUID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

func (h *ConversationHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userUID := c.Get("uid").(string)

	message, err := h.conversationUseCase.SendMessage(c.Request().Context(), userUID, c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ConversationHandler) GetMessages(c echo.Context) error {
	userUID := c.Get("uid").(string)

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	messages, err := h.conversationUseCase.ListMessages(c.Request().Context(), userUID, c.Param("id"), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ConversationHandler) MarkRead(c echo.Context) error {
	userUID := c.Get("uid").(string)

	if err := h.conversationUseCase.MarkRead(c.Request().Context(), userUID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}
