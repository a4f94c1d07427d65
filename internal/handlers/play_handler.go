package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gmod-tts/internal/audio"
)

// Play handles GET /play/:key. It needs no authorization: the key is the capability.
func (h *Handler) Play(c *gin.Context) {
	payload, err := h.cache.Get(c.Param("key"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio is not found"})
		return
	}
	c.Data(http.StatusOK, audio.ContentType(h.transcoder.Format()), payload)
}
