// Package voice defines named synthesis voices, the engines behind them and
// the registry that owns them for the lifetime of the process.
package voice

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Options are the caller's prosody biases, in percent.
type Options struct {
	Speed  int `json:"speed" yaml:"speed"`
	Volume int `json:"volume" yaml:"volume"`
}

// Add sums two bias records. Biases compose, they never override.
func (o Options) Add(other Options) Options {
	return Options{
		Speed:  o.Speed + other.Speed,
		Volume: o.Volume + other.Volume,
	}
}

// FormatBias renders a bias as a signed percentage, e.g. "+15%" or "-5%".
func FormatBias(v int) string {
	return fmt.Sprintf("%+d%%", v)
}

// Voice is a named synthesis capability. Synthesize returns the path of a
// temporary audio file that the caller owns and must remove.
type Voice interface {
	Description() string
	Languages() []string
	Supports(language string) bool
	Synthesize(ctx context.Context, text, language string, opts Options) (string, error)
}

// EngineRequest is one synthesis call handed to an Engine.
type EngineRequest struct {
	Text     string
	Voice    string // backend-specific voice identifier
	Language string

	// Effective biases after composition, and their formatted form.
	SpeedBias  int
	VolumeBias int
	Rate       string
	Volume     string

	// Output is the file the engine must write.
	Output string
}

// Engine is a synthesis backend. Implementations write audio to req.Output
// and return an error when no audio could be produced.
type Engine interface {
	Name() string
	Synthesize(ctx context.Context, req EngineRequest) error
}

// Transformer converts an audio file into another one, e.g. voice conversion.
type Transformer interface {
	Name() string
	Transform(ctx context.Context, input, output string) error
}

// NormalizeLanguage trims and lower-cases a language code.
func NormalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
