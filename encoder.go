package wavedit

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

const (
	wavHeaderSize = 44
	fmtChunkSize  = 16

	// frames buffered before each write to the underlying writer
	encodeBlockFrames = 4096
)

// encoder streams a canonical PCM16 WAV file.
type encoder struct {
	w io.Writer

	WrittenBytes int64
}

// addLE serializes and adds the passed value using little endian.
func (e *encoder) addLE(src any) error {
	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	e.WrittenBytes += int64(binary.Size(src))

	return nil
}

func (e *encoder) write(p []byte) error {
	n, err := e.w.Write(p)
	e.WrittenBytes += int64(n)

	if err != nil {
		return fmt.Errorf("failed to write buffer: %w", err)
	}

	return nil
}

func (e *encoder) writeHeader(f Format, dataSize uint32) error {
	blockAlign := f.NumChannels * bytesPerSample

	// chunk IDs are stored in file order, binary.Write on a [4]byte keeps it.
	fields := []any{
		riff.RiffID,
		uint32(wavHeaderSize - 8 + dataSize),
		riff.WavFormatID,
		riff.FmtID,
		uint32(fmtChunkSize),
		uint16(wavFormatPCM),
		uint16(f.NumChannels),
		uint32(f.SampleRate),
		uint32(f.SampleRate * blockAlign),
		uint16(blockAlign),
		uint16(bitsPerSample),
		riff.DataFormatID,
		dataSize,
	}

	for _, v := range fields {
		if err := e.addLE(v); err != nil {
			return fmt.Errorf("error encoding wav header - %w", err)
		}
	}

	return nil
}

func (e *encoder) writeData(b *Buffer) error {
	numChans := b.NumChannels()
	frames := b.FrameCount()
	block := make([]byte, 0, min(frames, encodeBlockFrames)*numChans*bytesPerSample)

	for i := range frames {
		for _, ch := range b.Channels {
			block = binary.LittleEndian.AppendUint16(block, uint16(float32ToPCMInt16(ch[i])))
		}

		if len(block) == cap(block) {
			if err := e.write(block); err != nil {
				return err
			}

			block = block[:0]
		}
	}

	if len(block) > 0 {
		return e.write(block)
	}

	return nil
}

// WriteTo writes b to w as a 16-bit PCM WAV file with a 44-byte header.
// Samples are clamped to [-1, 1] before quantization.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	e := &encoder{w: w}

	dataSize := uint32(b.FrameCount() * b.NumChannels() * bytesPerSample)

	if err := e.writeHeader(b.Format(), dataSize); err != nil {
		return e.WrittenBytes, err
	}

	if err := e.writeData(b); err != nil {
		return e.WrittenBytes, err
	}

	return e.WrittenBytes, nil
}

// Encode returns b as a complete 16-bit PCM WAV file. b is expected to pass
// Validate; an empty buffer still yields a valid 44-byte file.
func Encode(b *Buffer) []byte {
	out := bytes.NewBuffer(make([]byte, 0, EncodedLen(b)))
	// writes to a bytes.Buffer can't fail
	_, _ = b.WriteTo(out)

	return out.Bytes()
}

// EncodedLen returns the size in bytes of Encode(b).
func EncodedLen(b *Buffer) int {
	return wavHeaderSize + b.FrameCount()*b.NumChannels()*bytesPerSample
}
