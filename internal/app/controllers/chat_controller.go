package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/app/services"
	"github.com/eminekt/campuslib/internal/middleware"
)

// ChatController handles the library assistant endpoint
type ChatController struct {
	chatService services.ChatService
	streamDelay time.Duration
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, streamDelay time.Duration) *ChatController {
	return &ChatController{
		chatService: chatService,
		streamDelay: streamDelay,
	}
}

// Ask answers a natural-language question about the library
// @Summary Ask the library assistant
// @Description Matches the question against known intents and streams the answer as plain text, character by character
// @Tags chat
// @Accept json
// @Produce plain
// @Param request body dto.AskRequest true "Question text"
// @Success 200 {string} string "Streamed answer"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat/ask [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	var req dto.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	answer, err := c.chatService.Ask(ctx, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/plain; charset=utf-8")
	ctx.Status(http.StatusOK)

	flusher, canFlush := ctx.Writer.(http.Flusher)
	for _, r := range answer {
		if _, err := ctx.Writer.WriteString(string(r)); err != nil {
			return
		}
		if canFlush {
			flusher.Flush()
		}
		if c.streamDelay > 0 {
			select {
			case <-ctx.Request.Context().Done():
				return
			case <-time.After(c.streamDelay):
			}
		}
	}
}
