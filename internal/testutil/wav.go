package testutil

import (
	"bytes"
	"encoding/binary"
)

// WAV builds a 16-bit mono PCM WAV file of n silent samples.
func WAV(sampleRate, n int) []byte {
	dataSize := n * 2

	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	buf.WriteString("RIFF")
	w(uint32(36 + dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	w(uint32(16))
	w(uint16(1)) // PCM
	w(uint16(1)) // mono
	w(uint32(sampleRate))
	w(uint32(sampleRate * 2))
	w(uint16(2))
	w(uint16(16))
	buf.WriteString("data")
	w(uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}
