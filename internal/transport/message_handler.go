package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yaarfetch-be/internal/message"
	"yaarfetch-be/internal/middleware"
)

type MessageHandler struct {
	svc message.Service
}

func NewMessageHandler(svc message.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type sendMessageRequest struct {
	MatchID string `json:"match_id" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type messageResponse struct {
	ID       string    `json:"id"`
	MatchID  string    `json:"match_id"`
	SenderID string    `json:"sender_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

func toMessageResponse(m *message.Message) messageResponse {
	return messageResponse{
		ID:       m.ID,
		MatchID:  m.MatchID,
		SenderID: m.SenderID,
		Body:     m.Body,
		SentAt:   m.SentAt,
	}
}

// Send handles POST /api/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	m, err := h.svc.SendMessage(c.Request.Context(), req.MatchID, actorID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMessageResponse(m))
}

// ListForMatch handles GET /api/messages/match/:matchId — ascending by
// send time, participants only.
func (h *MessageHandler) ListForMatch(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)
	limit, page := pageParams(c)

	messages, err := h.svc.ListMessages(c.Request.Context(), c.Param("matchId"), actorID, limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}
	c.JSON(http.StatusOK, out)
}
