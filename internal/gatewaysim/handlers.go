package gatewaysim

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/disasternet/relay/internal/mesh"
	"github.com/disasternet/relay/internal/store"
)

// SendRequest is the gateway's write contract.
type SendRequest struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AnnounceRequest registers a peer with the registry.
type AnnounceRequest struct {
	ID   string          `json:"id" binding:"required"`
	Meta json.RawMessage `json:"meta"`
}

func (g *Gateway) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/peers", g.handlePeers)
	engine.GET("/messages", g.handleMessages)
	engine.POST("/send", g.handleSend)
	engine.POST("/announce", g.handleAnnounce)
	engine.POST("/clear-messages", g.handleClear)
	engine.GET("/health", g.handleHealth)
	return engine
}

func (g *Gateway) handlePeers(c *gin.Context) {
	c.JSON(http.StatusOK, g.registry.Snapshot())
}

// handleMessages returns the full known message set as formatted lines.
// Consumers only get array position to order by.
func (g *Gateway) handleMessages(c *gin.Context) {
	msgs, err := g.msgs.List(c.Request.Context(), 0)
	if err != nil {
		g.log.Error().Err(err).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "message log unavailable"})
		return
	}

	lines := make(mesh.MessageList, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, formatLine(m))
	}
	c.JSON(http.StatusOK, lines)
}

func (g *Gateway) handleSend(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body"})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "message cannot be empty"})
		return
	}

	kind := req.Type
	if kind == "" {
		kind = mesh.KindChat
	}

	env := mesh.Envelope{
		ID:        uuid.NewString(),
		Type:      kind,
		Sender:    "UI",
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
		Payload:   mesh.Payload{Text: text},
	}

	if _, err := g.msgs.Append(c.Request.Context(), store.Message{
		MsgID:  env.ID,
		Kind:   env.Type,
		Sender: env.Sender,
		Text:   env.Payload.Text,
	}); err != nil {
		g.log.Error().Err(err).Msg("failed to append message")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to store message"})
		return
	}

	g.log.Info().Str("id", env.ID).Str("type", env.Type).Msg("message accepted")
	c.JSON(http.StatusOK, gin.H{"status": "sent", "id": env.ID})
}

func (g *Gateway) handleAnnounce(c *gin.Context) {
	var req AnnounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body"})
		return
	}

	meta := req.Meta
	if len(meta) == 0 {
		meta = json.RawMessage(`{}`)
	}
	g.registry.Announce(req.ID, meta)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (g *Gateway) handleClear(c *gin.Context) {
	if err := g.msgs.Clear(c.Request.Context()); err != nil {
		g.log.Error().Err(err).Msg("failed to clear messages")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to clear messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "messages cleared"})
}

func (g *Gateway) handleHealth(c *gin.Context) {
	msgs, _ := g.msgs.List(c.Request.Context(), 0)
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"self_id":       g.registry.selfID,
		"leader":        g.registry.Leader(),
		"peer_count":    len(g.registry.Snapshot()),
		"message_count": len(msgs),
		"uptime":        time.Since(g.started).String(),
	})
}

func formatLine(m store.Message) string {
	return "[" + m.CreatedAt.Format(time.RFC3339) + "] [" + m.Sender + "]: " + m.Text
}
