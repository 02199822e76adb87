package wavedit

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-audio/audio"
)

// ErrInvalidBuffer is returned when a Buffer breaks one of its invariants.
var ErrInvalidBuffer = errors.New("invalid PCM buffer")

// maxDataSize is the largest data chunk that still leaves room for the rest
// of the header inside the 32-bit RIFF size field.
const maxDataSize = math.MaxUint32 - (wavHeaderSize - 8)

// Format describes the shape of a Buffer's samples.
type Format struct {
	SampleRate  int
	NumChannels int
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d channel(s)", f.SampleRate, f.NumChannels)
}

// Buffer holds decoded audio as one float32 slice per channel.
//
// Samples are nominally in [-1, 1]. Values outside that range are preserved
// and only clamped when the buffer is encoded. Every channel has the same
// length. Operations in this package never modify a Buffer in place.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer copies the passed channels into a new validated Buffer.
func NewBuffer(sampleRate int, channels ...[]float32) (*Buffer, error) {
	b := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, len(channels)),
	}
	for i, ch := range channels {
		b.Channels[i] = append(make([]float32, 0, len(ch)), ch...)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate reports whether the buffer can be trimmed, joined and encoded.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}

	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidBuffer, b.SampleRate)
	}

	if len(b.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidBuffer)
	}

	frames := len(b.Channels[0])
	for i, ch := range b.Channels[1:] {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d", ErrInvalidBuffer, i+1, len(ch), frames)
		}
	}

	if uint64(frames)*uint64(len(b.Channels))*bytesPerSample > maxDataSize {
		return fmt.Errorf("%w: %d frames do not fit a WAV data chunk", ErrInvalidBuffer, frames)
	}

	return nil
}

// NumChannels returns the number of channels.
func (b *Buffer) NumChannels() int {
	if b == nil {
		return 0
	}

	return len(b.Channels)
}

// FrameCount returns the number of samples in each channel.
func (b *Buffer) FrameCount() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}

	return len(b.Channels[0])
}

// Format returns the sample rate and channel count of the buffer.
func (b *Buffer) Format() Format {
	if b == nil {
		return Format{}
	}

	return Format{SampleRate: b.SampleRate, NumChannels: len(b.Channels)}
}

// Seconds returns the buffer length in seconds.
func (b *Buffer) Seconds() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}

	return float64(b.FrameCount()) / float64(b.SampleRate)
}

// Duration returns the buffer length as a time.Duration.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.FrameCount()) * time.Second / time.Duration(b.SampleRate)
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}

	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   make([][]float32, len(b.Channels)),
	}
	for i, ch := range b.Channels {
		out.Channels[i] = append(make([]float32, 0, len(ch)), ch...)
	}

	return out
}

// FromFloat32Buffer de-interleaves a go-audio buffer. A trailing partial frame
// is dropped.
func FromFloat32Buffer(buf *audio.Float32Buffer) (*Buffer, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: missing go-audio format", ErrInvalidBuffer)
	}

	numChans := buf.Format.NumChannels
	if numChans <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidBuffer, numChans)
	}

	frames := len(buf.Data) / numChans
	out := &Buffer{
		SampleRate: buf.Format.SampleRate,
		Channels:   make([][]float32, numChans),
	}

	for c := range out.Channels {
		out.Channels[c] = make([]float32, frames)
	}

	for i := range frames {
		for c := range numChans {
			out.Channels[c][i] = buf.Data[i*numChans+c]
		}
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}

	return out, nil
}

// Float32Buffer interleaves the buffer into a go-audio buffer.
func (b *Buffer) Float32Buffer() *audio.Float32Buffer {
	numChans := b.NumChannels()
	frames := b.FrameCount()

	data := make([]float32, frames*numChans)
	for i := range frames {
		for c, ch := range b.Channels {
			data[i*numChans+c] = ch[i]
		}
	}

	return &audio.Float32Buffer{
		Format: &audio.Format{
			NumChannels: numChans,
			SampleRate:  b.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitsPerSample,
	}
}
