package wavedit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestEncodeHeader(t *testing.T) {
	b := mustBuffer(t, 44100, make([]float32, 100), make([]float32, 100))

	out := Encode(b)
	if len(out) != 444 {
		t.Fatalf("len(Encode())=%d, want 444", len(out))
	}

	if EncodedLen(b) != len(out) {
		t.Fatalf("EncodedLen()=%d, want %d", EncodedLen(b), len(out))
	}

	le := binary.LittleEndian
	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", le.Uint32(out[4:8]), 436},
		{"fmt size", le.Uint32(out[16:20]), 16},
		{"format tag", uint32(le.Uint16(out[20:22])), 1},
		{"channels", uint32(le.Uint16(out[22:24])), 2},
		{"sample rate", le.Uint32(out[24:28]), 44100},
		{"byte rate", le.Uint32(out[28:32]), 44100 * 2 * 2},
		{"block align", uint32(le.Uint16(out[32:34])), 4},
		{"bits per sample", uint32(le.Uint16(out[34:36])), 16},
		{"data size", le.Uint32(out[40:44]), 400},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s=%d, want %d", c.name, c.got, c.want)
		}
	}

	for _, id := range []struct {
		at   int
		want string
	}{{0, "RIFF"}, {8, "WAVE"}, {12, "fmt "}, {36, "data"}} {
		if got := string(out[id.at : id.at+4]); got != id.want {
			t.Errorf("bytes %d..%d=%q, want %q", id.at, id.at+4, got, id.want)
		}
	}
}

func TestEncodeChunkLayout(t *testing.T) {
	b := mustBuffer(t, 8000, ramp(33, -1, 0.06))

	chunks, err := parseWavChunks(Encode(b))
	if err != nil {
		t.Fatalf("couldn't parse encoded file: %v", err)
	}

	if len(chunks) != 2 || chunks[0].id != "fmt " || chunks[1].id != "data" {
		t.Fatalf("unexpected chunk layout: %+v", chunks)
	}

	data := findChunk(chunks, "data")
	if data.size != 66 {
		t.Fatalf("data size=%d, want 66", data.size)
	}
}

func TestEncodeEmptyBuffer(t *testing.T) {
	b := mustBuffer(t, 48000, nil, nil)

	out := Encode(b)
	if len(out) != wavHeaderSize {
		t.Fatalf("len=%d, want %d", len(out), wavHeaderSize)
	}

	if got := binary.LittleEndian.Uint32(out[40:44]); got != 0 {
		t.Fatalf("data size=%d, want 0", got)
	}

	back, err := DecodeBytes(out)
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}

	if back.FrameCount() != 0 || back.NumChannels() != 2 {
		t.Fatalf("decoded %d frames, %d channels", back.FrameCount(), back.NumChannels())
	}
}

func TestEncodeInterleavesAndClamps(t *testing.T) {
	b := mustBuffer(t, 8000,
		[]float32{1, 2, -0.5},
		[]float32{-1, -2, 0.5},
	)

	out := Encode(b)

	want := []int16{32767, -32768, 32767, -32768, -16384, 16384}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(out[wavHeaderSize+i*2:]))
		if got != w {
			t.Fatalf("sample %d=%d, want %d", i, got, w)
		}
	}

	if b.Channels[0][1] != 2 {
		t.Fatal("Encode modified the source buffer")
	}
}

func TestEncodeLargeBufferFlushesBlocks(t *testing.T) {
	frames := encodeBlockFrames*3 + 17
	b := mustBuffer(t, 44100, ramp(frames, -1, 1.0/float32(frames)), make([]float32, frames))

	var out bytes.Buffer

	n, err := b.WriteTo(&out)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	if n != int64(out.Len()) || out.Len() != EncodedLen(b) {
		t.Fatalf("WriteTo reported %d bytes, wrote %d, want %d", n, out.Len(), EncodedLen(b))
	}

	if !bytes.Equal(out.Bytes(), Encode(b)) {
		t.Fatal("WriteTo and Encode disagree")
	}
}

type failingWriter struct {
	budget int
}

var errWriterFull = errors.New("writer full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.budget {
		n := w.budget
		w.budget = 0

		return n, errWriterFull
	}

	w.budget -= len(p)

	return len(p), nil
}

func TestWriteToPropagatesErrors(t *testing.T) {
	b := mustBuffer(t, 8000, make([]float32, 1000))

	for _, budget := range []int{0, 10, 50} {
		_, err := b.WriteTo(&failingWriter{budget: budget})
		if !errors.Is(err, errWriterFull) {
			t.Fatalf("WriteTo with %d byte budget=%v, want errWriterFull", budget, err)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	const sampleRate = 8000

	left := make([]float32, sampleRate)
	right := make([]float32, sampleRate)

	for i := range left {
		phase := 2 * math.Pi * float64(i) / sampleRate
		left[i] = float32(0.9 * math.Sin(440*phase))
		right[i] = float32(math.Cos(1000 * phase))
	}

	b := mustBuffer(t, sampleRate, left, right)

	back, err := DecodeBytes(Encode(b))
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}

	if back.Format() != b.Format() || back.FrameCount() != b.FrameCount() {
		t.Fatalf("decoded %s with %d frames, want %s with %d", back.Format(), back.FrameCount(), b.Format(), b.FrameCount())
	}

	for c := range b.Channels {
		for i := range b.Channels[c] {
			if !float32ApproxEqual(back.Channels[c][i], b.Channels[c][i], 1.0/32767) {
				t.Fatalf("channel %d sample %d=%f, want %f", c, i, back.Channels[c][i], b.Channels[c][i])
			}
		}
	}
}
