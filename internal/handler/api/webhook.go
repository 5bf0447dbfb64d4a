package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	reqdto "booking-concierge/internal/handler/dto/request"
	resdto "booking-concierge/internal/handler/dto/response"
	"booking-concierge/internal/handler/httperr"
	"booking-concierge/internal/handler/middleware"
	"booking-concierge/internal/pkg/clock"
	"booking-concierge/internal/usecase"

	"github.com/gin-gonic/gin"
)

// processTimeout bounds background processing of a delivery, which may span
// several model and provider round trips.
const processTimeout = 2 * time.Minute

const queryFallbackUser = "webhook_query"

type WebhookHandler struct {
	conversation usecase.ConversationUseCase
	clock        clock.Clock
	logger       *slog.Logger
}

func NewWebhookHandler(conversation usecase.ConversationUseCase, clk clock.Clock, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		conversation: conversation,
		clock:        clk,
		logger:       logger,
	}
}

// Receive acknowledges a verified delivery immediately and hands the event to
// the agent in the background.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req reqdto.WebhookMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Faltan campos requeridos (type, content)", nil)
		return
	}

	evt := usecase.WebhookEvent{
		Type:     req.Type,
		Content:  req.Content,
		UserID:   req.UserID,
		Metadata: req.Metadata,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()

		reply, err := h.conversation.ProcessWebhookEvent(ctx, evt)
		if err != nil {
			h.logger.Error("webhook event processing failed", "type", evt.Type, "error", err)
			return
		}
		h.logger.Info("webhook event processed", "type", evt.Type, "reply_length", len(reply))
	}()

	messageID := "unknown"
	if id, ok := req.Metadata["id"].(string); ok && id != "" {
		messageID = id
	}

	c.JSON(http.StatusOK, resdto.WebhookResponse{
		Success: true,
		Message: "Mensaje de tipo '" + req.Type + "' recibido y en procesamiento",
		Data: map[string]any{
			"received_at": h.clock.Now().Format(time.RFC3339),
			"message_id":  messageID,
		},
	})
}

// Query answers a direct question synchronously.
func (h *WebhookHandler) Query(c *gin.Context) {
	var req reqdto.AgentQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Falta el mensaje de la consulta", nil)
		return
	}

	userID := req.UserID
	if userID == "" {
		if authenticated, ok := middleware.GetUserID(c); ok {
			userID = authenticated
		}
	}
	if userID == "" {
		userID = queryFallbackUser
	}

	reply, err := h.conversation.ProcessUserMessage(c.Request.Context(), userID, req.Message)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Error al procesar la consulta", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.WebhookResponse{
		Success: true,
		Message: reply,
		Data: map[string]any{
			"query_time": h.clock.Now().Format(time.RFC3339),
			"context":    req.Context,
		},
	})
}
