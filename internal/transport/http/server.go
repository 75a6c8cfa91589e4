package http

import (
	stdhttp "net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lmercadier/tchat/internal/config"
	"github.com/lmercadier/tchat/internal/core"
	"github.com/lmercadier/tchat/internal/store"
)

// NewServer builds the HTTP server: WebSocket endpoint, channel
// listing API, health check, and the static browser client.
func NewServer(coord *core.Coordinator, st store.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(coord, logger)))

	api := router.Group("/api")
	channels := NewChannelHandlers(st, logger)
	api.GET("/channels", channels.ListChannels)

	if cfg.StaticDir != "" {
		router.Static("/assets", filepath.Join(cfg.StaticDir, "assets"))
		router.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(cfg.StaticDir, "index.html"))
		})
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
