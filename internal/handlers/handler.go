package handlers

import (
	"context"
	"errors"
	"net/url"
	"time"

	"go.uber.org/zap"

	"gmod-tts/internal/cache"
	"gmod-tts/internal/voice"
)

// Transcoder encodes a synthesized audio file into the delivery format.
type Transcoder interface {
	Format() string
	Transcode(ctx context.Context, input string) ([]byte, error)
}

// Options wires a Handler to its collaborators.
type Options struct {
	Registry         *voice.Registry
	Cache            *cache.AudioCache
	Transcoder       Transcoder
	RemoteBaseURL    string
	SynthesisTimeout time.Duration
	Logger           *zap.Logger
}

// Handler serves the synthesis, playback and info endpoints.
type Handler struct {
	registry         *voice.Registry
	cache            *cache.AudioCache
	transcoder       Transcoder
	baseURL          *url.URL
	synthesisTimeout time.Duration
	logger           *zap.Logger
}

func New(opts Options) (*Handler, error) {
	if opts.Registry == nil || opts.Cache == nil || opts.Transcoder == nil {
		return nil, errors.New("handlers: registry, cache and transcoder are required")
	}
	base, err := url.Parse(opts.RemoteBaseURL)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry:         opts.Registry,
		cache:            opts.Cache,
		transcoder:       opts.Transcoder,
		baseURL:          base,
		synthesisTimeout: opts.SynthesisTimeout,
		logger:           logger,
	}, nil
}
