// Package audio encodes synthesized speech into the delivery format.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ErrTranscodeTimeout is returned when the encoder does not finish in time.
var ErrTranscodeTimeout = errors.New("transcode timed out")

// FFmpegConfig selects the encoder binary and output parameters.
type FFmpegConfig struct {
	Path       string
	Format     string
	Codec      string
	Bitrate    string
	SampleRate int
	Timeout    time.Duration
}

// FFmpeg transcodes audio files to mono audio in the configured format.
type FFmpeg struct {
	cfg FFmpegConfig
}

// NewFFmpeg returns a transcoder. An empty codec means "same as format".
func NewFFmpeg(cfg FFmpegConfig) *FFmpeg {
	if cfg.Path == "" {
		cfg.Path = "ffmpeg"
	}
	if cfg.Codec == "" {
		cfg.Codec = cfg.Format
	}
	return &FFmpeg{cfg: cfg}
}

// Format returns the output container name, e.g. "mp3".
func (f *FFmpeg) Format() string { return f.cfg.Format }

// Transcode encodes the file at input and returns the encoded bytes.
// The process is killed once the configured timeout passes.
func (f *FFmpeg) Transcode(ctx context.Context, input string) ([]byte, error) {
	if f.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.cfg.Path, f.args(input)...)
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s", ErrTranscodeTimeout, f.cfg.Timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w: %s", err, lastLine(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, errors.New("ffmpeg produced no output")
	}
	return stdout.Bytes(), nil
}

func (f *FFmpeg) args(input string) []string {
	return []string{
		"-y",
		"-i", input,
		"-b:a", f.cfg.Bitrate,
		"-codec:a", f.cfg.Codec,
		"-f", f.cfg.Format,
		"-ar", strconv.Itoa(f.cfg.SampleRate),
		"-ac", "1",
		"pipe:1",
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
