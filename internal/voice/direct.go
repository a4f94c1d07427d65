package voice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// DirectConfig describes a voice backed by a single engine call.
type DirectConfig struct {
	Description  string
	Language     string
	Engine       Engine
	BackendVoice string
	Base         Options
	TmpDir       string
}

// Direct is a voice implemented by one engine and one backend voice.
// It speaks exactly one language.
type Direct struct {
	description  string
	language     string
	engine       Engine
	backendVoice string
	base         Options
	tmpDir       string
}

// NewDirect creates a direct voice.
func NewDirect(cfg DirectConfig) *Direct {
	return &Direct{
		description:  cfg.Description,
		language:     NormalizeLanguage(cfg.Language),
		engine:       cfg.Engine,
		backendVoice: cfg.BackendVoice,
		base:         cfg.Base,
		tmpDir:       cfg.TmpDir,
	}
}

func (d *Direct) Description() string { return d.description }

func (d *Direct) Languages() []string { return []string{d.language} }

func (d *Direct) Supports(language string) bool {
	return NormalizeLanguage(language) == d.language
}

// Base returns the voice's own bias, applied before the caller's.
func (d *Direct) Base() Options { return d.base }

// Synthesize runs the engine with the caller's options added to the base
// options. On failure the output file is removed and a SynthesisError returned.
func (d *Direct) Synthesize(ctx context.Context, text, language string, opts Options) (string, error) {
	if !d.Supports(language) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	eff := d.base.Add(opts)
	out := tempPath(d.tmpDir, d.engine.Name())
	req := EngineRequest{
		Text:       text,
		Voice:      d.backendVoice,
		Language:   d.language,
		SpeedBias:  eff.Speed,
		VolumeBias: eff.Volume,
		Rate:       FormatBias(eff.Speed),
		Volume:     FormatBias(eff.Volume),
		Output:     out,
	}

	err := d.engine.Synthesize(ctx, req)
	if err == nil {
		err = checkAudio(out)
	}
	if err != nil {
		removeTemp(out)
		return "", &SynthesisError{Stage: d.engine.Name(), Err: err}
	}
	return out, nil
}

var errNoAudio = errors.New("no audio produced")

func checkAudio(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errNoAudio
		}
		return err
	}
	if info.Size() == 0 {
		return errNoAudio
	}
	return nil
}

// tempPath names a fresh WAV file in dir. Engines and transformers write
// WAV; the encoder probes the actual content either way.
func tempPath(dir, prefix string) string {
	return filepath.Join(dir, prefix+"_"+xid.New().String()+".wav")
}

// removeTemp deletes a temporary file. A missing file is not an error.
func removeTemp(path string) {
	_ = os.Remove(path)
}
