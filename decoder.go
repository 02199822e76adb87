package wavedit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/dhowden/tag"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// ErrUnsupportedFormat is returned for containers or encodings that can't
	// be decoded into a Buffer, such as MP3 or FLAC files.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrInvalidData is returned when the input is truncated or malformed.
	ErrInvalidData = errors.New("invalid audio data")

	aiffFormID = [4]byte{'F', 'O', 'R', 'M'}
	aiffID     = [4]byte{'A', 'I', 'F', 'F'}
	aifcID     = [4]byte{'A', 'I', 'F', 'C'}
)

// fmtChunk mirrors the 16 mandatory bytes of a WAV fmt chunk.
type fmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
}

// Decode reads a complete WAV or AIFF file into a Buffer.
//
// Compressed containers are recognized and reported as ErrUnsupportedFormat.
// On error no partial buffer is returned.
func Decode(r io.ReadSeeker) (*Buffer, error) {
	var magic [12]byte

	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: failed to read container header: %w", ErrInvalidData, err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek back to the start: %w", err)
	}

	var id, form [4]byte
	copy(id[:], magic[0:4])
	copy(form[:], magic[8:12])

	switch {
	case id == riff.RiffID && form == riff.WavFormatID:
		return decodeWAV(r)
	case id == aiffFormID && (form == aiffID || form == aifcID):
		return decodeAIFF(r)
	default:
		return nil, identify(r)
	}
}

// DecodeBytes is Decode for in-memory files.
func DecodeBytes(data []byte) (*Buffer, error) {
	return Decode(bytes.NewReader(data))
}

func identify(r io.ReadSeeker) error {
	_, fileType, err := tag.Identify(r)
	if err != nil || fileType == tag.UnknownFileType {
		return fmt.Errorf("%w: unrecognized container", ErrUnsupportedFormat)
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileType)
}

func decodeWAV(r io.ReadSeeker) (*Buffer, error) {
	parser := riff.New(r)

	if _, _, err := parser.IDnSize(); err != nil {
		return nil, fmt.Errorf("%w: failed to read RIFF header: %w", ErrInvalidData, err)
	}

	if err := binary.Read(r, binary.BigEndian, &parser.Format); err != nil {
		return nil, fmt.Errorf("%w: failed to read RIFF form: %w", ErrInvalidData, err)
	}

	var format *fmtChunk

	for {
		chunk, size, err := nextChunk(parser, r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if format == nil {
					return nil, fmt.Errorf("%w: fmt chunk not found", ErrInvalidData)
				}

				return nil, fmt.Errorf("%w: data chunk not found", ErrInvalidData)
			}

			return nil, fmt.Errorf("%w: error reading chunk header - %w", ErrInvalidData, err)
		}

		switch chunk.ID {
		case riff.FmtID:
			format, err = readFmtChunk(chunk)
			if err != nil {
				return nil, err
			}
		case riff.DataFormatID:
			if format == nil {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrInvalidData)
			}

			return readDataChunk(chunk, size, format)
		default:
			chunk.Drain()
		}
	}
}

// nextChunk is riff.Parser.NextChunk but also returns the declared size,
// which excludes the pad byte of odd-sized chunks.
func nextChunk(parser *riff.Parser, r io.Reader) (*riff.Chunk, int64, error) {
	id, size, err := parser.IDnSize()
	if err != nil {
		return nil, 0, err
	}

	padded := int64(size) + int64(size%2)

	return &riff.Chunk{
		ID:   id,
		Size: int(padded),
		R:    io.LimitReader(r, padded),
	}, int64(size), nil
}

func readFmtChunk(chunk *riff.Chunk) (*fmtChunk, error) {
	f := &fmtChunk{}

	if err := chunk.ReadLE(f); err != nil {
		return nil, fmt.Errorf("%w: failed to read fmt chunk: %w", ErrInvalidData, err)
	}

	extra, err := io.ReadAll(chunk)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read fmt extension: %w", ErrInvalidData, err)
	}

	if f.FormatTag == wavFormatExtensible {
		// cbSize, valid bits, channel mask, then the sub-format GUID whose
		// first two bytes hold the actual format tag.
		if len(extra) < 24 {
			return nil, fmt.Errorf("%w: short WAVE_FORMAT_EXTENSIBLE fmt chunk", ErrInvalidData)
		}

		f.FormatTag = binary.LittleEndian.Uint16(extra[8:10])
	}

	if f.NumChannels == 0 {
		return nil, fmt.Errorf("%w: fmt chunk declares no channels", ErrInvalidData)
	}

	if f.SampleRate == 0 || f.SampleRate > math.MaxInt32 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidData, f.SampleRate)
	}

	return f, nil
}

func readDataChunk(chunk *riff.Chunk, size int64, f *fmtChunk) (*Buffer, error) {
	width, decode, err := sampleDecoder(f)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(chunk, size))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read PCM data: %w", ErrInvalidData, err)
	}

	if int64(len(data)) < size {
		return nil, fmt.Errorf("%w: data chunk truncated at %d of %d bytes", ErrInvalidData, len(data), size)
	}

	numChans := int(f.NumChannels)
	frameSize := width * numChans
	frames := len(data) / frameSize

	b := &Buffer{
		SampleRate: int(f.SampleRate),
		Channels:   make([][]float32, numChans),
	}
	for c := range b.Channels {
		b.Channels[c] = make([]float32, frames)
	}

	for i := range frames {
		frame := data[i*frameSize:]
		for c := range numChans {
			b.Channels[c][i] = decode(frame[c*width : (c+1)*width])
		}
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	return b, nil
}

// sampleDecoder returns the stored width of one sample and a function
// converting those bytes into a float. Float samples are passed through
// unclamped.
func sampleDecoder(f *fmtChunk) (int, func([]byte) float32, error) {
	bits := int(f.BitsPerSample)

	switch f.FormatTag {
	case wavFormatIEEEFloat:
		switch bits {
		case 32:
			return 4, func(b []byte) float32 {
				return math.Float32frombits(binary.LittleEndian.Uint32(b))
			}, nil
		case 64:
			return 8, func(b []byte) float32 {
				return float32(math.Float64frombits(binary.LittleEndian.Uint64(b)))
			}, nil
		}
	case wavFormatALaw, wavFormatMuLaw:
		if bits != 8 {
			break
		}

		table := &aLawTable
		if f.FormatTag == wavFormatMuLaw {
			table = &muLawTable
		}

		return 1, func(b []byte) float32 { return table[b[0]] }, nil
	case wavFormatPCM:
		switch width := (bits + 7) / 8; width {
		case 1:
			// 8-bit WAV samples are unsigned
			return 1, func(b []byte) float32 {
				return normalizePCMInt(int(b[0])-128, 8)
			}, nil
		case 2:
			return 2, func(b []byte) float32 {
				return pcmInt16ToFloat32(int16(binary.LittleEndian.Uint16(b)))
			}, nil
		case 3:
			return 3, func(b []byte) float32 {
				return normalizePCMInt(int(audio.Int24LETo32(b)), 24)
			}, nil
		case 4:
			return 4, func(b []byte) float32 {
				return normalizePCMInt(int(int32(binary.LittleEndian.Uint32(b))), 32)
			}, nil
		}
	default:
		return 0, nil, fmt.Errorf("%w: wav format tag %d", ErrUnsupportedFormat, f.FormatTag)
	}

	return 0, nil, fmt.Errorf("%w: %d-bit samples for wav format tag %d", ErrUnsupportedFormat, bits, f.FormatTag)
}

func decodeAIFF(r io.ReadSeeker) (*Buffer, error) {
	dec := aiff.NewDecoder(r)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode AIFF: %w", ErrInvalidData, err)
	}

	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: AIFF file without PCM data", ErrInvalidData)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit AIFF samples", ErrUnsupportedFormat, bitDepth)
	}

	floats := &audio.Float32Buffer{
		Format: buf.Format,
		Data:   make([]float32, len(buf.Data)),
	}
	for i, v := range buf.Data {
		floats.Data[i] = normalizePCMInt(v, bitDepth)
	}

	out, err := FromFloat32Buffer(floats)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	return out, nil
}
