package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"gmod-tts/internal/voice"
)

// Ranges accepted by the Cloud Text-to-Speech AudioConfig.
const (
	minSpeakingRate = 0.25
	maxSpeakingRate = 4.0
	minVolumeGainDb = -96.0
	maxVolumeGainDb = 16.0
)

type synthesizeFunc func(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error)

// GoogleTTS synthesizes with Google Cloud Text-to-Speech. Credentials come
// from the environment (GOOGLE_APPLICATION_CREDENTIALS or workload identity).
type GoogleTTS struct {
	synthesize synthesizeFunc
	closer     func() error
}

// NewGoogleTTS dials the Text-to-Speech API.
func NewGoogleTTS(ctx context.Context) (*GoogleTTS, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}
	return &GoogleTTS{
		synthesize: func(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
			return client.SynthesizeSpeech(ctx, req)
		},
		closer: client.Close,
	}, nil
}

func (g *GoogleTTS) Name() string { return "google_tts" }

func (g *GoogleTTS) Close() error {
	if g.closer != nil {
		return g.closer()
	}
	return nil
}

func (g *GoogleTTS) Synthesize(ctx context.Context, req voice.EngineRequest) error {
	resp, err := g.synthesize(ctx, googleRequest(req))
	if err != nil {
		return fmt.Errorf("failed to synthesize speech: %w", err)
	}
	if len(resp.GetAudioContent()) == 0 {
		return errors.New("empty audio content received from Google TTS")
	}
	return os.WriteFile(req.Output, resp.GetAudioContent(), 0o644)
}

func googleRequest(req voice.EngineRequest) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: googleLanguageCode(req.Voice, req.Language),
			Name:         req.Voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  speakingRate(req.SpeedBias),
			VolumeGainDb:  volumeGainDb(req.VolumeBias),
		},
	}
}

// googleLanguageCode takes the locale prefix of a voice name
// ("en-GB-Standard-D" -> "en-GB"), falling back to the voice's language.
func googleLanguageCode(name, language string) string {
	parts := strings.Split(name, "-")
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return language
}

func speakingRate(bias int) float64 {
	return clamp(1+float64(bias)/100, minSpeakingRate, maxSpeakingRate)
}

func volumeGainDb(bias int) float64 {
	factor := 1 + float64(bias)/100
	if factor <= 0 {
		return minVolumeGainDb
	}
	return clamp(20*math.Log10(factor), minVolumeGainDb, maxVolumeGainDb)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

var _ voice.Engine = (*GoogleTTS)(nil)
