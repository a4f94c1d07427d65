package voice

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	v := NewDirect(DirectConfig{Description: "Guy", Language: "en"})

	require.NoError(t, r.Register("  Guy ", v))
	require.True(t, r.Has("guy"))
	require.True(t, r.Has("GUY"))

	got, err := r.Get("guy")
	require.NoError(t, err)
	require.Same(t, v, got)
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	first := NewDirect(DirectConfig{Description: "first", Language: "en"})
	second := NewDirect(DirectConfig{Description: "second", Language: "en"})

	require.NoError(t, r.Register("alyx", first))
	err := r.Register("Alyx", second)
	require.ErrorIs(t, err, ErrDuplicateVoice)

	got, err := r.Get("alyx")
	require.NoError(t, err)
	require.Equal(t, "first", got.Description())
	require.Equal(t, 1, r.Len())
}

func TestRegistry_NotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("x")
	require.ErrorIs(t, err, ErrVoiceNotFound)
	require.True(t, IsInvalidInput(err))
	require.False(t, r.Has("x"))
}

func TestRegistry_EmptyName(t *testing.T) {
	require.Error(t, NewRegistry().Register("   ", NewDirect(DirectConfig{Language: "en"})))
}

func TestRegistry_Describe(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("guy", NewDirect(DirectConfig{Description: "Guy", Language: "en"})))
	c, err := NewComposite("Kleiner", map[string]*Direct{
		"en": NewDirect(DirectConfig{Language: "en"}),
		"ru": NewDirect(DirectConfig{Language: "ru"}),
	}, &copyTransformer{}, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, r.Register("kleiner", c))

	info := r.Describe()
	require.Equal(t, Info{Description: "Guy", Languages: map[string]bool{"en": true}}, info["guy"])
	require.Equal(t, Info{Description: "Kleiner", Languages: map[string]bool{"en": true, "ru": true}}, info["kleiner"])
	require.Equal(t, []string{"guy", "kleiner"}, r.Names())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Register(fmt.Sprintf("v%d", i%8), NewDirect(DirectConfig{Language: "en"}))
			_ = r.Has("v0")
			_ = r.Describe()
		}()
	}
	wg.Wait()
	require.Equal(t, 8, r.Len())
}
