// Package config loads server settings from GMOD_TTS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	Project = "gmod-tts"
	Version = "1.0"

	envPrefix = "GMOD_TTS_"
)

type Config struct {
	RemoteBaseURL string `env:"REMOTE_BASE_URL,required,notEmpty"`
	SecretKey     string `env:"SECRET_KEY"`
	ListenAddr    string `env:"LISTEN_ADDR" envDefault:":8000"`
	Debug         bool   `env:"DEBUG"`

	VoicesDir string `env:"VOICES_DIR" envDefault:"./voices"`

	// Cache
	AudioTTL                   int `env:"AUDIO_TTL" envDefault:"5"`
	AudioMaxCount              int `env:"AUDIO_MAX_COUNT" envDefault:"128"`
	AudioCleaningIntervalFloor int `env:"AUDIO_CLEANING_INTERVAL_FLOOR" envDefault:"30"`

	// Output encoding
	AudioTmp         string        `env:"AUDIO_TMP" envDefault:"./audio_tmp"`
	AudioFormat      string        `env:"AUDIO_FORMAT" envDefault:"mp3"`
	AudioCodec       string        `env:"AUDIO_CODEC"`
	AudioBitrate     string        `env:"AUDIO_BITRATE" envDefault:"48k"`
	AudioSampleRate  int           `env:"AUDIO_SAMPLERATE" envDefault:"22050"`
	TranscodeTimeout time.Duration `env:"TRANSCODE_TIMEOUT" envDefault:"8s"`

	SynthesisTimeout time.Duration `env:"SYNTHESIS_TIMEOUT" envDefault:"60s"`

	RateLimit float64 `env:"RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"RATE_BURST" envDefault:"10"`

	// External tools
	FFmpegPath  string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	EdgeTTSPath string `env:"EDGE_TTS_PATH" envDefault:"edge-tts"`
	PiperPath   string `env:"PIPER_PATH" envDefault:"piper"`
	RVCCommand  string `env:"RVC_COMMAND" envDefault:"python -m rvc_python cli"`
	RVCDevice   string `env:"RVC_DEVICE" envDefault:"cuda:0"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse(env.Options{Prefix: envPrefix})
}

// FromMap parses settings from vars instead of the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: envPrefix, Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.RemoteBaseURL = strings.TrimSpace(c.RemoteBaseURL)
	c.SecretKey = strings.TrimSpace(c.SecretKey)
	c.VoicesDir = strings.TrimSpace(c.VoicesDir)
	c.AudioTmp = strings.TrimSpace(c.AudioTmp)
	if c.AudioCodec == "" {
		c.AudioCodec = c.AudioFormat
	}
}

func (c *Config) validate() error {
	if c.RemoteBaseURL == "" {
		return errors.New("GMOD_TTS_REMOTE_BASE_URL is not set")
	}
	if _, err := url.Parse(c.RemoteBaseURL); err != nil {
		return fmt.Errorf("GMOD_TTS_REMOTE_BASE_URL: %w", err)
	}
	if c.AudioTTL < 1 {
		return fmt.Errorf("GMOD_TTS_AUDIO_TTL must be positive, got %d", c.AudioTTL)
	}
	if c.AudioMaxCount < 1 {
		return fmt.Errorf("GMOD_TTS_AUDIO_MAX_COUNT must be positive, got %d", c.AudioMaxCount)
	}
	if c.AudioFormat == "" {
		return errors.New("GMOD_TTS_AUDIO_FORMAT is empty")
	}
	return nil
}

func (c *Config) TTL() time.Duration {
	return time.Duration(c.AudioTTL) * time.Second
}

func (c *Config) CleaningIntervalFloor() time.Duration {
	return time.Duration(c.AudioCleaningIntervalFloor) * time.Second
}
