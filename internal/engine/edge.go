package engine

import (
	"context"

	"gmod-tts/internal/voice"
)

// EdgeTTS synthesizes through the edge-tts command line client.
type EdgeTTS struct {
	path string
}

// NewEdgeTTS returns an engine that runs the edge-tts binary at path.
func NewEdgeTTS(path string) *EdgeTTS {
	if path == "" {
		path = "edge-tts"
	}
	return &EdgeTTS{path: path}
}

func (e *EdgeTTS) Name() string { return "edge_tts" }

func (e *EdgeTTS) Synthesize(ctx context.Context, req voice.EngineRequest) error {
	return runCommand(ctx, nil, e.path, edgeArgs(req)...)
}

// edgeArgs binds every value with "=" so text starting with "-" is not
// parsed as a flag.
func edgeArgs(req voice.EngineRequest) []string {
	return []string{
		"--voice=" + req.Voice,
		"--rate=" + req.Rate,
		"--volume=" + req.Volume,
		"--text=" + req.Text,
		"--write-media=" + req.Output,
	}
}

var _ voice.Engine = (*EdgeTTS)(nil)
