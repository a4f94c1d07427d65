package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{"GMOD_TTS_REMOTE_BASE_URL": " http://tts.example.com/ "})
	require.NoError(t, err)

	require.Equal(t, "http://tts.example.com/", cfg.RemoteBaseURL)
	require.Empty(t, cfg.SecretKey)
	require.Equal(t, ":8000", cfg.ListenAddr)
	require.Equal(t, "./voices", cfg.VoicesDir)
	require.Equal(t, 5*time.Second, cfg.TTL())
	require.Equal(t, 128, cfg.AudioMaxCount)
	require.Equal(t, 30*time.Second, cfg.CleaningIntervalFloor())
	require.Equal(t, "./audio_tmp", cfg.AudioTmp)
	require.Equal(t, "mp3", cfg.AudioFormat)
	require.Equal(t, "mp3", cfg.AudioCodec)
	require.Equal(t, "48k", cfg.AudioBitrate)
	require.Equal(t, 22050, cfg.AudioSampleRate)
	require.Equal(t, 8*time.Second, cfg.TranscodeTimeout)
	require.Equal(t, 60*time.Second, cfg.SynthesisTimeout)
	require.Zero(t, cfg.RateLimit)
	require.Equal(t, 10, cfg.RateBurst)
	require.Equal(t, "cuda:0", cfg.RVCDevice)
	require.Equal(t, "python -m rvc_python cli", cfg.RVCCommand)
}

func TestFromMap_Overrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"GMOD_TTS_REMOTE_BASE_URL": "https://example.com/tts/",
		"GMOD_TTS_SECRET_KEY":      " hunter2 ",
		"GMOD_TTS_AUDIO_TTL":       "60",
		"GMOD_TTS_AUDIO_FORMAT":    "ogg",
		"GMOD_TTS_AUDIO_CODEC":     "libvorbis",
		"GMOD_TTS_RATE_LIMIT":      "2.5",
		"GMOD_TTS_DEBUG":           "true",
	})
	require.NoError(t, err)
	require.Equal(t, "hunter2", cfg.SecretKey)
	require.Equal(t, time.Minute, cfg.TTL())
	require.Equal(t, "ogg", cfg.AudioFormat)
	require.Equal(t, "libvorbis", cfg.AudioCodec)
	require.Equal(t, 2.5, cfg.RateLimit)
	require.True(t, cfg.Debug)
}

func TestFromMap_RequiresBaseURL(t *testing.T) {
	_, err := FromMap(map[string]string{})
	require.Error(t, err)

	_, err = FromMap(map[string]string{"GMOD_TTS_REMOTE_BASE_URL": "   "})
	require.Error(t, err)
}

func TestFromMap_Invalid(t *testing.T) {
	_, err := FromMap(map[string]string{
		"GMOD_TTS_REMOTE_BASE_URL": "http://x/",
		"GMOD_TTS_AUDIO_MAX_COUNT": "0",
	})
	require.Error(t, err)

	_, err = FromMap(map[string]string{
		"GMOD_TTS_REMOTE_BASE_URL": "http://x/",
		"GMOD_TTS_AUDIO_TTL":       "five",
	})
	require.Error(t, err)
}
