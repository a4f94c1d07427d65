package voicedef

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gmod-tts/internal/engine"
	"gmod-tts/internal/testutil"
	"gmod-tts/internal/voice"
)

type fixture struct {
	engines map[string]*testutil.FakeEngine
	models  []engine.RVCModel
	loader  *Loader
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	f := &fixture{engines: map[string]*testutil.FakeEngine{
		EdgeTTS:   {EngineName: EdgeTTS, Audio: []byte("edge")},
		GoogleTTS: {EngineName: GoogleTTS, Audio: []byte("google")},
		Piper:     {EngineName: Piper, Audio: []byte("piper")},
	}}
	f.loader = &Loader{
		Dir:     testutil.NewVoicesDir(t, files),
		TmpDir:  t.TempDir(),
		Engines: func(name string) (voice.Engine, error) {
			eng, ok := f.engines[name]
			if !ok {
				return nil, fmt.Errorf("unknown engine %q", name)
			}
			return eng, nil
		},
		NewTransformer: func(model engine.RVCModel) (voice.Transformer, error) {
			f.models = append(f.models, model)
			return &testutil.FakeTransformer{Prefix: []byte("rvc:")}, nil
		},
	}
	return f
}

const edgeJSON = `{
	"alyx": {"voice": "en-US-JennyNeural", "language": "en", "description": "Alyx", "speed": 5, "volume": -10},
	"Breen": {"voice": "ru-RU-DmitryNeural", "language": "RU", "description": "Breen"}
}`

func TestLoad_EdgeVoices(t *testing.T) {
	f := newFixture(t, map[string]string{"edge_tts.json": edgeJSON})
	reg := voice.NewRegistry()
	require.NoError(t, f.loader.Load(reg))

	require.Equal(t, []string{"alyx", "breen"}, reg.Names())
	require.Equal(t, voice.Info{Description: "Breen", Languages: map[string]bool{"ru": true}}, reg.Describe()["breen"])

	v, err := reg.Get("alyx")
	require.NoError(t, err)
	out, err := v.Synthesize(context.Background(), "hi", "en", voice.Options{Speed: 10})
	require.NoError(t, err)
	require.FileExists(t, out)

	req := f.engines[EdgeTTS].Requests()[0]
	require.Equal(t, "en-US-JennyNeural", req.Voice)
	require.Equal(t, "+15%", req.Rate)
	require.Equal(t, "-10%", req.Volume)
}

func TestLoad_YAMLAndOtherEngines(t *testing.T) {
	f := newFixture(t, map[string]string{
		"google_tts.yaml": "gman:\n  voice: en-GB-Standard-D\n  language: en\n  description: G-Man\n",
		"piper.yml":       "lessac:\n  voice: models/en_US-lessac.onnx\n  language: en\n  description: Lessac\n",
	})
	reg := voice.NewRegistry()
	require.NoError(t, f.loader.Load(reg))
	require.Equal(t, []string{"gman", "lessac"}, reg.Names())

	v, err := reg.Get("lessac")
	require.NoError(t, err)
	_, err = v.Synthesize(context.Background(), "hi", "en", voice.Options{})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(f.loader.Dir, "models", "en_US-lessac.onnx"), f.engines[Piper].Requests()[0].Voice)
}

func TestLoad_RVCModels(t *testing.T) {
	f := newFixture(t, map[string]string{
		"rvc_models/hl/kleiner.json": `{
			"description": "Dr. Kleiner",
			"model": "kleiner.pth",
			"index": "kleiner.index",
			"rvc_version": "v2",
			"rvc_params": {"pitch": -3},
			"languages": {
				"en": "en-US-GuyNeural",
				"ru": {"voice": "ru-RU-DmitryNeural", "speed": 10}
			}
		}`,
		"rvc_models/barney.yaml": "description: Barney\nmodel: /abs/barney.pth\nindex: barney.index\nrvc_version: v1\nlanguages:\n  en: en-US-EricNeural\n",
	})
	reg := voice.NewRegistry()
	require.NoError(t, f.loader.Load(reg))

	require.Equal(t, []string{"barney", "kleiner"}, reg.Names())
	require.Equal(t, map[string]bool{"en": true, "ru": true}, reg.Describe()["kleiner"].Languages)

	require.Len(t, f.models, 2)
	barney, kleiner := f.models[0], f.models[1]
	require.Equal(t, "/abs/barney.pth", barney.Model)
	require.Equal(t, filepath.Join(f.loader.Dir, "rvc_models", "barney.index"), barney.Index)
	require.Equal(t, engine.DefaultRVCParams(), barney.Params)

	require.Equal(t, filepath.Join(f.loader.Dir, "rvc_models", "hl", "kleiner.pth"), kleiner.Model)
	require.Equal(t, "v2", kleiner.Version)
	require.Equal(t, -3, kleiner.Params.Pitch)
	require.Equal(t, "rmvpe", kleiner.Params.Method)
	require.Equal(t, 0.5, kleiner.Params.Protect)

	v, err := reg.Get("kleiner")
	require.NoError(t, err)
	out, err := v.Synthesize(context.Background(), "hi", "ru", voice.Options{Speed: 5})
	require.NoError(t, err)
	require.FileExists(t, out)

	req := f.engines[EdgeTTS].Requests()[0]
	require.Equal(t, "ru-RU-DmitryNeural", req.Voice)
	require.Equal(t, 15, req.SpeedBias)
}

func TestLoad_DuplicateAborts(t *testing.T) {
	f := newFixture(t, map[string]string{
		"edge_tts.json":        edgeJSON,
		"rvc_models/alyx.json": `{"description": "x", "model": "m", "index": "i", "rvc_version": "v2", "languages": {"en": "v"}}`,
	})
	err := f.loader.Load(voice.NewRegistry())
	require.ErrorIs(t, err, voice.ErrDuplicateVoice)
}

func TestLoad_InvalidDefinitions(t *testing.T) {
	cases := map[string]map[string]string{
		"missing voice":    {"edge_tts.json": `{"a": {"language": "en"}}`},
		"missing language": {"edge_tts.json": `{"a": {"voice": "x"}}`},
		"bad json":         {"edge_tts.json": `{`},
		"bad version":      {"rvc_models/a.json": `{"model": "m", "index": "i", "rvc_version": "v3", "languages": {"en": "v"}}`},
		"bad method":       {"rvc_models/a.json": `{"model": "m", "index": "i", "rvc_version": "v2", "rvc_params": {"method": "fast"}, "languages": {"en": "v"}}`},
		"no languages":     {"rvc_models/a.json": `{"model": "m", "index": "i", "rvc_version": "v2", "languages": {}}`},
		"unknown engine":   {"rvc_models/a.json": `{"model": "m", "index": "i", "rvc_version": "v2", "languages": {"en": {"voice": "v", "engine": "espeak"}}}`},
	}
	for name, files := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, files)
			require.Error(t, f.loader.Load(voice.NewRegistry()))
		})
	}
}

func TestLoad_EmptyDirAndMissingDir(t *testing.T) {
	f := newFixture(t, nil)
	reg := voice.NewRegistry()
	require.NoError(t, f.loader.Load(reg))
	require.Zero(t, reg.Len())

	f.loader.Dir = filepath.Join(f.loader.Dir, "missing")
	require.Error(t, f.loader.Load(reg))
}

func TestLoad_UnusedEngineNotResolved(t *testing.T) {
	f := newFixture(t, map[string]string{"edge_tts.json": edgeJSON})
	resolved := map[string]int{}
	inner := f.loader.Engines
	f.loader.Engines = func(name string) (voice.Engine, error) {
		resolved[name]++
		return inner(name)
	}
	require.NoError(t, f.loader.Load(voice.NewRegistry()))
	require.Equal(t, map[string]int{EdgeTTS: 1}, resolved)
}

func TestDefinitionFiles(t *testing.T) {
	dir := testutil.NewVoicesDir(t, map[string]string{"piper.json": "{}", "piper.yaml": "{}"})
	require.Equal(t, []string{filepath.Join(dir, "piper.json"), filepath.Join(dir, "piper.yaml")}, DefinitionFiles(dir, Piper))
	require.Empty(t, DefinitionFiles(dir, GoogleTTS))
}

func TestLoad_NilLoggerLeftUntouched(t *testing.T) {
	f := newFixture(t, map[string]string{"edge_tts.json": edgeJSON})
	require.NoError(t, f.loader.Load(voice.NewRegistry()))
	require.Nil(t, f.loader.Logger)
}

func TestLoad_DuplicateLanguageInModel(t *testing.T) {
	f := newFixture(t, map[string]string{
		"rvc_models/a.json": `{"model": "m", "index": "i", "rvc_version": "v2", "languages": {"EN": "v", "en": "w"}}`,
	})
	require.Error(t, f.loader.Load(voice.NewRegistry()))
}
