package voice

import (
	"errors"
	"fmt"
)

var (
	// ErrVoiceNotFound indicates no voice is registered under the requested name.
	ErrVoiceNotFound = errors.New("voice not found")

	// ErrUnsupportedLanguage indicates the voice cannot speak the requested language.
	ErrUnsupportedLanguage = errors.New("language not supported by voice")

	// ErrDuplicateVoice indicates a second registration under an existing name.
	ErrDuplicateVoice = errors.New("duplicate voice")

	// ErrSynthesisFailed indicates the backend could not produce audio for the text.
	ErrSynthesisFailed = errors.New("synthesis failed")
)

// SynthesisError wraps a backend failure with the stage that produced it.
// It matches ErrSynthesisFailed under errors.Is.
type SynthesisError struct {
	Stage string
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSynthesisFailed, e.Stage, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

func (e *SynthesisError) Is(target error) bool {
	return target == ErrSynthesisFailed
}

// IsInvalidInput reports whether err was caused by a request naming an
// unknown voice or a language the voice does not support.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrVoiceNotFound) || errors.Is(err, ErrUnsupportedLanguage)
}
