package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goldenhair/storefront/internal/chat"
)

type chatRequest struct {
	Messages []chat.Message `json:"messages"`
}

// chatCompletion proxies the widget's conversation to the completions
// upstream and streams the SSE body straight back.
func (h *handler) chatCompletion(c *gin.Context) {
	ctx := c.Request.Context()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages must be an array"})
		return
	}
	if err := chat.ValidateMessages(req.Messages); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.cfg.Chat == nil {
		h.cfg.Logger.Error("chat upstream not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		return
	}

	resp, err := h.cfg.Chat.StreamCompletion(ctx, req.Messages)
	if err != nil {
		h.cfg.Logger.Error("chat upstream request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service temporarily unavailable"})
		return
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "We're experiencing high demand. Please try again in a moment."})
		return
	case resp.StatusCode == http.StatusPaymentRequired:
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Service temporarily unavailable. Please try again later."})
		return
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		h.cfg.Logger.Error("chat upstream error", zap.Int("status", resp.StatusCode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		// Client likely disconnected mid-stream; nothing to send them.
		h.cfg.Logger.Debug("chat stream copy ended", zap.Error(err))
	}
}
