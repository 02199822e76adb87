package wavedit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// parseWavChunks walks the top level chunks of a WAV file.
func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		chunks = append(chunks, testChunk{id: id, size: size, data: append([]byte(nil), data[offset:end]...)})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) *testChunk {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i]
		}
	}

	return nil
}

// buildWAV assembles a RIFF/WAVE file from raw chunks, padding odd ones.
func buildWAV(chunks ...testChunk) []byte {
	body := []byte("WAVE")
	for _, ch := range chunks {
		body = append(body, ch.id...)
		body = binary.LittleEndian.AppendUint32(body, ch.size)
		body = append(body, ch.data...)

		if len(ch.data)%2 == 1 {
			body = append(body, 0)
		}
	}

	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))

	return append(out, body...)
}

func fmtChunkBytes(formatTag, numChans uint16, sampleRate uint32, bits uint16) testChunk {
	blockAlign := numChans * ((bits + 7) / 8)

	data := binary.LittleEndian.AppendUint16(nil, formatTag)
	data = binary.LittleEndian.AppendUint16(data, numChans)
	data = binary.LittleEndian.AppendUint32(data, sampleRate)
	data = binary.LittleEndian.AppendUint32(data, sampleRate*uint32(blockAlign))
	data = binary.LittleEndian.AppendUint16(data, blockAlign)
	data = binary.LittleEndian.AppendUint16(data, bits)

	return testChunk{id: "fmt ", size: uint32(len(data)), data: data}
}

func dataChunk(data []byte) testChunk {
	return testChunk{id: "data", size: uint32(len(data)), data: data}
}

func mustBuffer(t *testing.T, sampleRate int, channels ...[]float32) *Buffer {
	t.Helper()

	b, err := NewBuffer(sampleRate, channels...)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}

	return b
}

// ramp returns n samples counting up from start in steps of step.
func ramp(n int, start, step float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = start + float32(i)*step
	}

	return out
}

func sameSamples(a, b *Buffer) bool {
	if a.SampleRate != b.SampleRate || len(a.Channels) != len(b.Channels) {
		return false
	}

	for c := range a.Channels {
		if len(a.Channels[c]) != len(b.Channels[c]) {
			return false
		}

		for i := range a.Channels[c] {
			if a.Channels[c][i] != b.Channels[c][i] {
				return false
			}
		}
	}

	return true
}

func float32ApproxEqual(a, b, epsilon float32) bool {
	return math.Abs(float64(a-b)) <= float64(epsilon)
}
