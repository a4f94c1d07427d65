package voice

import (
	"context"
	"errors"
	"fmt"
)

// Composite chains a per-language Direct pre-stage into a transform stage.
// Its languages are exactly the keys of the pre-stage mapping.
type Composite struct {
	description string
	stages      map[string]*Direct
	transform   Transformer
	tmpDir      string
}

// NewComposite creates a composite voice. Stage keys are normalized language codes.
func NewComposite(description string, stages map[string]*Direct, transform Transformer, tmpDir string) (*Composite, error) {
	if len(stages) == 0 {
		return nil, errors.New("composite voice needs at least one language")
	}
	if transform == nil {
		return nil, errors.New("composite voice needs a transform stage")
	}
	normalized := make(map[string]*Direct, len(stages))
	for lang, stage := range stages {
		key := NormalizeLanguage(lang)
		if _, dup := normalized[key]; dup {
			return nil, fmt.Errorf("composite voice lists language %q more than once", key)
		}
		normalized[key] = stage
	}
	return &Composite{
		description: description,
		stages:      normalized,
		transform:   transform,
		tmpDir:      tmpDir,
	}, nil
}

func (c *Composite) Description() string { return c.description }

func (c *Composite) Languages() []string { return sortedKeys(c.stages) }

func (c *Composite) Supports(language string) bool {
	_, ok := c.stages[NormalizeLanguage(language)]
	return ok
}

// Synthesize forwards opts unchanged to the pre-stage, then transforms its
// output. The intermediate file is removed on every path.
func (c *Composite) Synthesize(ctx context.Context, text, language string, opts Options) (string, error) {
	lang := NormalizeLanguage(language)
	stage, ok := c.stages[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	intermediate, err := stage.Synthesize(ctx, text, lang, opts)
	if err != nil {
		return "", err
	}
	defer removeTemp(intermediate)

	out := tempPath(c.tmpDir, c.transform.Name())
	err = c.transform.Transform(ctx, intermediate, out)
	if err == nil {
		err = checkAudio(out)
	}
	if err != nil {
		removeTemp(out)
		return "", &SynthesisError{Stage: c.transform.Name(), Err: err}
	}
	return out, nil
}
