package voice

import (
	"fmt"
	"strings"
	"sync"
)

// Info is the public description of a registered voice.
type Info struct {
	Description string          `json:"description"`
	Languages   map[string]bool `json:"languages"`
}

// Registry maps voice names to voices. Registration is write-once per name
// and voices are never removed.
type Registry struct {
	mu     sync.RWMutex
	voices map[string]Voice
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		voices: make(map[string]Voice),
	}
}

// NormalizeName trims and lower-cases a voice name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a voice under name. It fails with ErrDuplicateVoice if the
// name is taken; the existing voice stays registered.
func (r *Registry) Register(name string, v Voice) error {
	key := NormalizeName(name)
	if key == "" {
		return fmt.Errorf("register voice: empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.voices[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVoice, key)
	}
	r.voices[key] = v
	return nil
}

// Get returns the named voice or ErrVoiceNotFound.
func (r *Registry) Get(name string) (Voice, error) {
	key := NormalizeName(name)
	r.mu.RLock()
	v, ok := r.voices[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVoiceNotFound, key)
	}
	return v, nil
}

// Has returns true if a voice is registered under name.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.voices)
}

// Len returns the number of registered voices.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.voices)
}

// Describe returns the description and languages of every voice.
func (r *Registry) Describe() map[string]Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Info, len(r.voices))
	for name, v := range r.voices {
		langs := make(map[string]bool)
		for _, l := range v.Languages() {
			langs[l] = true
		}
		out[name] = Info{
			Description: v.Description(),
			Languages:   langs,
		}
	}
	return out
}
