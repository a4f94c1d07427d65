package engine

import (
	"context"
	"strconv"
	"strings"

	"gmod-tts/internal/voice"
)

// Piper synthesizes offline with a piper voice model. The backend voice
// of a request is the path of the .onnx model.
type Piper struct {
	path string
}

// NewPiper returns an engine that runs the piper binary at path.
func NewPiper(path string) *Piper {
	if path == "" {
		path = "piper"
	}
	return &Piper{path: path}
}

func (p *Piper) Name() string { return "piper" }

func (p *Piper) Synthesize(ctx context.Context, req voice.EngineRequest) error {
	return runCommand(ctx, strings.NewReader(req.Text), p.path, piperArgs(req)...)
}

func piperArgs(req voice.EngineRequest) []string {
	return []string{
		"--model", req.Voice,
		"--output_file", req.Output,
		"--length_scale", strconv.FormatFloat(lengthScale(req.SpeedBias), 'f', 3, 64),
	}
}

// lengthScale converts a speed bias into piper's phoneme length multiplier.
// Faster speech means shorter phonemes.
func lengthScale(speedBias int) float64 {
	factor := 1 + float64(speedBias)/100
	if factor < 0.1 {
		factor = 0.1
	}
	return 1 / factor
}

var _ voice.Engine = (*Piper)(nil)
