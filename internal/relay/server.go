// Package relay implements the forwarding boundary between the browser
// client and the backend gateway. It presents a stable same-origin API and
// forwards each call verbatim; it holds no state and applies no business
// logic, so the backend's address can move without touching the client.
package relay

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/disasternet/relay/internal/config"
	"github.com/disasternet/relay/internal/mesh"
)

// NewServer builds the relay HTTP server: the /api passthrough routes,
// /health and static client assets everywhere else.
func NewServer(gw *mesh.Client, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(LoggerMiddleware(logger), gin.Recovery())

	h := NewHandlers(gw, logger)
	engine.GET("/api/peers", h.Peers)
	engine.GET("/api/messages", h.Messages)
	engine.POST("/api/send", h.Send)
	engine.GET("/health", h.Health)

	engine.NoRoute(staticHandler(cfg.StaticDir))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// LoggerMiddleware logs each HTTP request after it completes.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}
