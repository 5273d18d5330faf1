package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/blurrhq/hr-portal-api/internal/errors"
	"github.com/blurrhq/hr-portal-api/internal/services"
)

// ChatHandler serves the rule-based assistant endpoint.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Respond answers a chat message about tasks or projects.
func (h *ChatHandler) Respond(c *gin.Context) {
	type ChatRequest struct {
		Message string `json:"message" binding:"required"`
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	content, err := h.chatService.Respond(req.Message)
	if err != nil {
		// Degrade to an apology rather than a bare 500; the assistant is
		// best-effort.
		c.JSON(http.StatusOK, gin.H{
			"content": "I apologize, but I encountered an error while processing your request. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": content,
	})
}
