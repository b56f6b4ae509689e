package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/broadcast"
)

// EventsHandler streams change notifications to dashboard tabs over
// server-sent events. Each event carries only a type tag; clients re-read
// the authoritative state through the regular endpoints.
type EventsHandler struct {
	bus    *broadcast.Bus
	logger *zap.Logger
}

// NewEventsHandler constructs the handler adapter.
func NewEventsHandler(bus *broadcast.Bus, logger *zap.Logger) *EventsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventsHandler{bus: bus, logger: logger}
}

// Stream subscribes the connection to the bus until the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	messages, cancel := h.bus.Subscribe()
	defer cancel()

	h.logger.Debug("event stream opened", zap.String("client_ip", c.ClientIP()))

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case msg, ok := <-messages:
			if !ok {
				return false
			}
			c.SSEvent("message", msg)
			return true
		}
	})

	h.logger.Debug("event stream closed", zap.String("client_ip", c.ClientIP()))
}
