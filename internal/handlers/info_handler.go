package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gmod-tts/internal/config"
	"gmod-tts/internal/voice"
)

// InfoResponse describes the server and its voices.
type InfoResponse struct {
	Project string                `json:"project"`
	Version string                `json:"version"`
	Voices  map[string]voice.Info `json:"voices"`
}

// Info handles GET /info.
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Project: config.Project,
		Version: config.Version,
		Voices:  h.registry.Describe(),
	})
}
