package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/service/assistant"
	"github.com/quackworks/duckfarm/pkg/clients/genai"
)

// AssistantHandler serves the AI features: chat, prediction and
// text-to-speech. Failures are surfaced as user-facing messages, never as
// raw errors.
type AssistantHandler struct {
	svc    *assistant.Service
	logger *zap.Logger
}

// NewAssistantHandler constructs the handler adapter.
func NewAssistantHandler(svc *assistant.Service, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{svc: svc, logger: logger}
}

type chatRequest struct {
	Messages        []genai.ChatMessage `json:"messages" binding:"required,min=1"`
	IncludeFarmData bool                `json:"includeFarmData"`
}

// Chat forwards the conversation history to the model.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat payload"})
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), req.Messages, req.IncludeFarmData)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": assistant.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Predict returns an egg production estimate with its rationale.
func (h *AssistantHandler) Predict(c *gin.Context) {
	var req genai.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prediction payload"})
		return
	}

	prediction, err := h.svc.Predict(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": assistant.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, prediction)
}

type speakRequest struct {
	Text  string `json:"text" binding:"required"`
	Voice string `json:"voice"`
}

// Speak converts text to audio using the requested or configured voice.
func (h *AssistantHandler) Speak(c *gin.Context) {
	var req speakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid speech payload"})
		return
	}

	audio, err := h.svc.Synthesize(c.Request.Context(), req.Text, req.Voice)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": assistant.UserMessage(err)})
		return
	}
	c.Data(http.StatusOK, "audio/wav", audio)
}
