package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gmod-tts/internal/audio"
	"gmod-tts/internal/cache"
	"gmod-tts/internal/voice"
)

// expiresLayout is ISO-8601 UTC with second precision.
const expiresLayout = "2006-01-02T15:04:05Z"

// TTSRequest represents the request payload for synthesizing speech
type TTSRequest struct {
	Text     string         `json:"text" binding:"required"`
	Voice    string         `json:"voice" binding:"required"`
	Language string         `json:"language" binding:"required"`
	Options  *voice.Options `json:"options"`
}

// TTSResponse points the client at the cached audio.
type TTSResponse struct {
	PlayURL          string  `json:"play_url"`
	Duration         float64 `json:"duration"`
	PlayURLExpiresAt string  `json:"play_url_expires_at"`
}

// TextToSpeech handles POST /tts.
func (h *Handler) TextToSpeech(c *gin.Context) {
	var req TTSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Checked before any synthesis work is done.
	if h.cache.IsFull() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Audio cache is full"})
		return
	}

	text := strings.TrimSpace(req.Text)
	name := voice.NormalizeName(req.Voice)
	language := voice.NormalizeLanguage(req.Language)
	var opts voice.Options
	if req.Options != nil {
		opts = *req.Options
	}

	v, err := h.registry.Get(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid voice %q", name)})
		return
	}
	if !v.Supports(language) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Language %q is not available for voice %q", language, name),
		})
		return
	}

	payload, err := h.synthesize(c.Request.Context(), v, text, language, opts)
	if err != nil {
		if errors.Is(err, voice.ErrSynthesisFailed) || voice.IsInvalidInput(err) {
			h.logger.Info("synthesis failed",
				zap.String("voice", name), zap.String("language", language), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't synthesize text by this voice"})
			return
		}
		h.logger.Error("failed to encode audio",
			zap.String("voice", name), zap.String("language", language), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode audio"})
		return
	}

	format := h.transcoder.Format()
	duration, err := audio.Duration(format, payload)
	if err != nil {
		h.logger.Warn("could not determine audio duration", zap.String("format", format), zap.Error(err))
	}

	key := cache.NewKey()
	expiresAt := h.cache.Insert(key, payload)

	h.logger.Debug("audio cached",
		zap.String("key", key),
		zap.String("voice", name),
		zap.String("language", language),
		zap.String("size", humanize.Bytes(uint64(len(payload)))),
		zap.Float64("duration", duration))

	c.JSON(http.StatusOK, TTSResponse{
		PlayURL:          h.playURL(key),
		Duration:         duration,
		PlayURLExpiresAt: expiresAt.UTC().Format(expiresLayout),
	})
}

// synthesize runs the voice and encodes its output. The voice's temp file
// is removed before returning on every path.
func (h *Handler) synthesize(ctx context.Context, v voice.Voice, text, language string, opts voice.Options) ([]byte, error) {
	synthCtx := ctx
	if h.synthesisTimeout > 0 {
		var cancel context.CancelFunc
		synthCtx, cancel = context.WithTimeout(ctx, h.synthesisTimeout)
		defer cancel()
	}

	path, err := v.Synthesize(synthCtx, text, language, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			h.logger.Warn("failed to remove temp audio", zap.String("path", path), zap.Error(err))
		}
	}()

	return h.transcoder.Transcode(ctx, path)
}

func (h *Handler) playURL(key string) string {
	return h.baseURL.ResolveReference(&url.URL{Path: "play/" + key}).String()
}
