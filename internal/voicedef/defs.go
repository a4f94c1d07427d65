// Package voicedef reads voice definitions from the voices directory and
// registers them.
//
// Layout:
//
//	<dir>/edge_tts.json|yaml     direct voices on edge-tts
//	<dir>/google_tts.json|yaml   direct voices on Google Cloud TTS
//	<dir>/piper.json|yaml        direct voices on piper (voice = model path)
//	<dir>/rvc_models/**/*.json|yaml   one converted voice per file
package voicedef

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gmod-tts/internal/engine"
)

// Engine names used as definition file stems and in language entries.
const (
	EdgeTTS   = "edge_tts"
	GoogleTTS = "google_tts"
	Piper     = "piper"
)

// DirectEngines are the engines with a top-level definition file, in load order.
var DirectEngines = []string{EdgeTTS, GoogleTTS, Piper}

var extensions = []string{".json", ".yaml", ".yml"}

// DirectDef defines one voice backed by a single engine voice.
type DirectDef struct {
	Voice       string `json:"voice" yaml:"voice"`
	Language    string `json:"language" yaml:"language"`
	Description string `json:"description" yaml:"description"`
	Speed       int    `json:"speed" yaml:"speed"`
	Volume      int    `json:"volume" yaml:"volume"`
}

func (d DirectDef) validate() error {
	if strings.TrimSpace(d.Voice) == "" {
		return errors.New("voice is required")
	}
	if strings.TrimSpace(d.Language) == "" {
		return errors.New("language is required")
	}
	return nil
}

// StageDef is the pre-stage used for one language of a converted voice.
// In a definition file it is either a bare edge-tts voice name or an object.
type StageDef struct {
	Voice  string `json:"voice" yaml:"voice"`
	Speed  int    `json:"speed" yaml:"speed"`
	Volume int    `json:"volume" yaml:"volume"`
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty"`
}

func (s *StageDef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = StageDef{Voice: name}
		return nil
	}
	type plain StageDef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = StageDef(p)
	return nil
}

func (s *StageDef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = StageDef{Voice: node.Value}
		return nil
	}
	type plain StageDef
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = StageDef(p)
	return nil
}

// RVCDef defines a voice converted by an RVC model.
type RVCDef struct {
	Description string              `json:"description" yaml:"description"`
	Model       string              `json:"model" yaml:"model"`
	Index       string              `json:"index" yaml:"index"`
	Version     string              `json:"rvc_version" yaml:"rvc_version"`
	Params      *rvcParamsDef       `json:"rvc_params" yaml:"rvc_params"`
	Languages   map[string]StageDef `json:"languages" yaml:"languages"`
}

// rvcParamsDef uses pointers so omitted fields keep their defaults.
type rvcParamsDef struct {
	Method     *string  `json:"method" yaml:"method"`
	Protect    *float64 `json:"protect" yaml:"protect"`
	Pitch      *int     `json:"pitch" yaml:"pitch"`
	RMSMixRate *float64 `json:"rms_mix_rate" yaml:"rms_mix_rate"`
}

var rvcMethods = map[string]bool{"harvest": true, "crepe": true, "rmvpe": true, "pm": true}

func (p *rvcParamsDef) resolve() (engine.RVCParams, error) {
	out := engine.DefaultRVCParams()
	if p == nil {
		return out, nil
	}
	if p.Method != nil {
		if !rvcMethods[*p.Method] {
			return out, fmt.Errorf("unknown rvc method %q", *p.Method)
		}
		out.Method = *p.Method
	}
	if p.Protect != nil {
		out.Protect = *p.Protect
	}
	if p.Pitch != nil {
		out.Pitch = *p.Pitch
	}
	if p.RMSMixRate != nil {
		out.RMSMixRate = *p.RMSMixRate
	}
	return out, nil
}

func (d RVCDef) validate() error {
	switch {
	case d.Model == "":
		return errors.New("model is required")
	case d.Index == "":
		return errors.New("index is required")
	case d.Version != "v1" && d.Version != "v2":
		return fmt.Errorf("rvc_version must be v1 or v2, got %q", d.Version)
	case len(d.Languages) == 0:
		return errors.New("at least one language is required")
	}
	for lang, stage := range d.Languages {
		if strings.TrimSpace(stage.Voice) == "" {
			return fmt.Errorf("language %q: voice is required", lang)
		}
	}
	return nil
}

// decodeFile unmarshals a JSON or YAML file into v, chosen by extension.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch filepath.Ext(path) {
	case ".json":
		err = json.Unmarshal(data, v)
	default:
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func isDefinition(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
