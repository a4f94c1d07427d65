package voicedef

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"gmod-tts/internal/engine"
	"gmod-tts/internal/voice"
)

// EngineResolver returns the engine registered under name. It is only
// called for engines that some definition actually uses.
type EngineResolver func(name string) (voice.Engine, error)

// TransformerFactory builds the conversion stage for one model.
type TransformerFactory func(model engine.RVCModel) (voice.Transformer, error)

// Loader registers the voices defined under a directory.
type Loader struct {
	Dir            string
	TmpDir         string
	Engines        EngineResolver
	NewTransformer TransformerFactory
	Logger         *zap.Logger
}

// Load reads every definition and registers the resulting voices. A bad
// definition or a duplicate name aborts loading.
func (l *Loader) Load(reg *voice.Registry) error {
	if _, err := os.Stat(l.Dir); err != nil {
		return fmt.Errorf("voices dir %q: %w", l.Dir, err)
	}

	for _, engineName := range DirectEngines {
		if err := l.loadDirect(reg, engineName); err != nil {
			return err
		}
	}
	return l.loadRVC(reg)
}

// DefinitionFiles returns the existing definition files for a direct engine.
func DefinitionFiles(dir, engineName string) []string {
	var files []string
	for _, ext := range extensions {
		path := filepath.Join(dir, engineName+ext)
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	return files
}

func (l *Loader) loadDirect(reg *voice.Registry, engineName string) error {
	files := DefinitionFiles(l.Dir, engineName)
	if len(files) == 0 {
		l.logger().Debug("no voice definitions", zap.String("engine", engineName))
		return nil
	}

	eng, err := l.Engines(engineName)
	if err != nil {
		return fmt.Errorf("engine %s: %w", engineName, err)
	}

	for _, path := range files {
		defs := map[string]DirectDef{}
		if err := decodeFile(path, &defs); err != nil {
			return err
		}
		names := make([]string, 0, len(defs))
		for name := range defs {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			def := defs[name]
			if err := def.validate(); err != nil {
				return fmt.Errorf("%s: voice %q: %w", path, name, err)
			}
			backend := def.Voice
			if engineName == Piper {
				backend = resolvePath(l.Dir, backend)
			}
			v := voice.NewDirect(voice.DirectConfig{
				Description:  def.Description,
				Language:     def.Language,
				Engine:       eng,
				BackendVoice: backend,
				Base:         voice.Options{Speed: def.Speed, Volume: def.Volume},
				TmpDir:       l.TmpDir,
			})
			if err := reg.Register(name, v); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			l.logger().Info("voice registered",
				zap.String("name", voice.NormalizeName(name)),
				zap.String("engine", engineName),
				zap.String("backend_voice", def.Voice),
				zap.Strings("languages", v.Languages()))
		}
	}
	return nil
}

func (l *Loader) loadRVC(reg *voice.Registry) error {
	root := filepath.Join(l.Dir, "rvc_models")
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		l.logger().Debug("no rvc models directory", zap.String("path", root))
		return nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isDefinition(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}
	slices.Sort(files)

	for _, path := range files {
		if err := l.loadRVCFile(reg, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (l *Loader) loadRVCFile(reg *voice.Registry, path string) error {
	var def RVCDef
	if err := decodeFile(path, &def); err != nil {
		return err
	}
	if err := def.validate(); err != nil {
		return err
	}
	params, err := def.Params.resolve()
	if err != nil {
		return err
	}

	stages := make(map[string]*voice.Direct, len(def.Languages))
	for lang, stage := range def.Languages {
		engineName := stage.Engine
		if engineName == "" {
			engineName = EdgeTTS
		}
		eng, err := l.Engines(engineName)
		if err != nil {
			return fmt.Errorf("language %q: engine %s: %w", lang, engineName, err)
		}
		backend := stage.Voice
		if engineName == Piper {
			backend = resolvePath(l.Dir, backend)
		}
		stages[lang] = voice.NewDirect(voice.DirectConfig{
			Language:     lang,
			Engine:       eng,
			BackendVoice: backend,
			Base:         voice.Options{Speed: stage.Speed, Volume: stage.Volume},
			TmpDir:       l.TmpDir,
		})
	}

	base := filepath.Dir(path)
	transform, err := l.NewTransformer(engine.RVCModel{
		Model:   resolvePath(base, def.Model),
		Index:   resolvePath(base, def.Index),
		Version: def.Version,
		Params:  params,
	})
	if err != nil {
		return err
	}

	v, err := voice.NewComposite(def.Description, stages, transform, l.TmpDir)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := reg.Register(name, v); err != nil {
		return err
	}
	l.logger().Info("voice registered",
		zap.String("name", voice.NormalizeName(name)),
		zap.String("engine", transform.Name()),
		zap.Strings("languages", v.Languages()))
	return nil
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
