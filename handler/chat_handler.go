package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medicare-vn/medicare-be/service"
	"github.com/medicare-vn/medicare-be/types"
)

type ChatHandler struct {
	chatService *service.ChatService
	wsService   *service.WebSocketService
}

func NewChatHandler(chatService *service.ChatService, wsService *service.WebSocketService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		wsService:   wsService,
	}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Message is required",
		})
		return
	}

	resp, provider := h.chatService.Respond(c.Request.Context(), req.Message, req.History, req.ProductContext)
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.ChatResponse{
			Text:     resp.Text,
			Products: resp.Products,
			Provider: provider,
		},
	})
}

func (h *ChatHandler) HandleChatWS(c *gin.Context) {
	h.wsService.HandleChat(c.Writer, c.Request)
}
