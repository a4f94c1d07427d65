package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"gmod-tts/internal/config"
	"gmod-tts/internal/engine"
	"gmod-tts/internal/voice"
	"gmod-tts/internal/voicedef"
)

// engineSet creates engines on first use so that, for example, Google
// credentials are only needed when some voice uses Google.
type engineSet struct {
	ctx     context.Context
	cfg     *config.Config
	engines map[string]voice.Engine
	closers []func() error
}

func newEngineSet(ctx context.Context, cfg *config.Config) *engineSet {
	return &engineSet{ctx: ctx, cfg: cfg, engines: map[string]voice.Engine{}}
}

func (s *engineSet) resolve(name string) (voice.Engine, error) {
	if eng, ok := s.engines[name]; ok {
		return eng, nil
	}

	var eng voice.Engine
	switch name {
	case voicedef.EdgeTTS:
		eng = engine.NewEdgeTTS(s.cfg.EdgeTTSPath)
	case voicedef.Piper:
		eng = engine.NewPiper(s.cfg.PiperPath)
	case voicedef.GoogleTTS:
		g, err := engine.NewGoogleTTS(s.ctx)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, g.Close)
		eng = g
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
	s.engines[name] = eng
	return eng, nil
}

func (s *engineSet) newTransformer(model engine.RVCModel) (voice.Transformer, error) {
	return engine.NewRVC(s.cfg.RVCCommand, s.cfg.RVCDevice, model)
}

func (s *engineSet) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// loadVoices creates the temp directory and registers every defined voice.
func loadVoices(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*voice.Registry, *engineSet, error) {
	if err := os.MkdirAll(cfg.AudioTmp, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create temp dir: %w", err)
	}

	engines := newEngineSet(ctx, cfg)
	reg := voice.NewRegistry()
	loader := &voicedef.Loader{
		Dir:            cfg.VoicesDir,
		TmpDir:         cfg.AudioTmp,
		Engines:        engines.resolve,
		NewTransformer: engines.newTransformer,
		Logger:         logger,
	}
	if err := loader.Load(reg); err != nil {
		_ = engines.Close()
		return nil, nil, fmt.Errorf("load voices: %w", err)
	}
	return reg, engines, nil
}
