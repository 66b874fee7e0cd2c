package relay

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/disasternet/relay/internal/mesh"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handlers forwards client requests to the backend gateway. Response bodies
// and statuses come back unchanged; an unreachable backend becomes a 502 so
// the client's error handling engages instead of seeing a synthetic empty
// success.
type Handlers struct {
	gw  *mesh.Client
	log *zerolog.Logger
}

// NewHandlers creates the relay's passthrough handlers.
func NewHandlers(gw *mesh.Client, logger *zerolog.Logger) *Handlers {
	return &Handlers{gw: gw, log: logger}
}

// Peers forwards GET /api/peers to the gateway's /peers.
func (h *Handlers) Peers(c *gin.Context) {
	body, status, err := h.gw.RawPeers(c.Request.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("peers forward failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "backend gateway unreachable"})
		return
	}
	c.Data(status, "application/json", body)
}

// Messages forwards GET /api/messages to the gateway's /messages.
func (h *Handlers) Messages(c *gin.Context) {
	body, status, err := h.gw.RawMessages(c.Request.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("messages forward failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "backend gateway unreachable"})
		return
	}
	c.Data(status, "application/json", body)
}

// Send forwards POST /api/send to the gateway's /send without inspecting
// either the request or the response body.
func (h *Handlers) Send(c *gin.Context) {
	reqBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	body, status, err := h.gw.RawSend(c.Request.Context(), reqBody)
	if err != nil {
		h.log.Warn().Err(err).Msg("send forward failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "backend gateway unreachable"})
		return
	}
	c.Data(status, "application/json", body)
}

// Health reports relay liveness. It deliberately does not probe the
// backend, so a down backend shows up as failed /api calls, not a dead
// relay.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
