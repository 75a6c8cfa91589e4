package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lmercadier/tchat/internal/core"
	"github.com/lmercadier/tchat/internal/store"
)

// ChannelHandlers provides the read-only REST view of the channel
// registry.
type ChannelHandlers struct {
	registry *core.Registry
	log      *zerolog.Logger
}

// NewChannelHandlers creates a new channel handlers instance.
func NewChannelHandlers(st store.Store, logger *zerolog.Logger) *ChannelHandlers {
	return &ChannelHandlers{
		registry: core.NewRegistry(st),
		log:      logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListChannels handles listing every known channel.
// GET /api/channels
func (h *ChannelHandlers) ListChannels(c *gin.Context) {
	channels, err := h.registry.Channels(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list channels")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Debug().Int("channel_count", len(channels)).Msg("channels listed")
	c.JSON(http.StatusOK, channels)
}
