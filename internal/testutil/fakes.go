// Package testutil holds fakes and fixtures shared by package tests.
package testutil

import (
	"context"
	"errors"
	"os"
	"sync"

	"gmod-tts/internal/voice"
)

// FakeEngine writes Audio to the requested output and records every request.
type FakeEngine struct {
	EngineName string
	Audio      []byte
	Err        error

	mu       sync.Mutex
	requests []voice.EngineRequest
}

func (e *FakeEngine) Name() string {
	if e.EngineName == "" {
		return "fake"
	}
	return e.EngineName
}

func (e *FakeEngine) Synthesize(ctx context.Context, req voice.EngineRequest) error {
	e.mu.Lock()
	e.requests = append(e.requests, req)
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if e.Audio != nil {
		if err := os.WriteFile(req.Output, e.Audio, 0o644); err != nil {
			return err
		}
	}
	return e.Err
}

// Requests returns a copy of the recorded requests.
func (e *FakeEngine) Requests() []voice.EngineRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]voice.EngineRequest(nil), e.requests...)
}

// BlockingEngine waits for ctx to end, then fails with its error.
type BlockingEngine struct{}

func (BlockingEngine) Name() string { return "blocking" }

func (BlockingEngine) Synthesize(ctx context.Context, _ voice.EngineRequest) error {
	<-ctx.Done()
	return ctx.Err()
}

// FakeTransformer prefixes the input audio with Prefix.
type FakeTransformer struct {
	Prefix []byte
	Err    error
}

func (t *FakeTransformer) Name() string { return "rvc" }

func (t *FakeTransformer) Transform(_ context.Context, input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, append(append([]byte(nil), t.Prefix...), data...), 0o644); err != nil {
		return err
	}
	return t.Err
}

// FakeTranscoder returns the input file's bytes unchanged.
type FakeTranscoder struct {
	OutFormat string
	Err       error

	mu     sync.Mutex
	inputs []string
}

func (f *FakeTranscoder) Format() string {
	if f.OutFormat == "" {
		return "mp3"
	}
	return f.OutFormat
}

func (f *FakeTranscoder) Transcode(_ context.Context, input string) ([]byte, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty input")
	}
	return data, nil
}

// Inputs returns the paths passed to Transcode.
func (f *FakeTranscoder) Inputs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.inputs...)
}
