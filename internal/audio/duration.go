package audio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// ErrUnknownDuration is returned for formats whose length cannot be decoded.
var ErrUnknownDuration = errors.New("duration unavailable for format")

// readSeekCloser lets the mp3 decoder seek, which it needs to report a length.
type readSeekCloser struct {
	*bytes.Reader
}

func (readSeekCloser) Close() error { return nil }

// Duration decodes payload and returns its playing time in seconds.
func Duration(format string, payload []byte) (float64, error) {
	var (
		streamer beep.StreamSeekCloser
		f        beep.Format
		err      error
	)
	switch format {
	case "mp3":
		streamer, f, err = mp3.Decode(readSeekCloser{bytes.NewReader(payload)})
	case "wav":
		streamer, f, err = wav.Decode(bytes.NewReader(payload))
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownDuration, format)
	}
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", format, err)
	}
	defer streamer.Close()

	n := streamer.Len()
	if n < 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownDuration, format)
	}
	return f.SampleRate.D(n).Seconds(), nil
}

// ContentType returns the MIME type served for an output format.
func ContentType(format string) string {
	return "audio/" + format
}
