package wavedit

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFew is returned when fewer than two buffers are joined.
	ErrTooFew = errors.New("at least two buffers are required to join")
	// ErrIncompatibleFormat is matched by *FormatMismatchError.
	ErrIncompatibleFormat = errors.New("incompatible audio format")
)

// FormatMismatchError identifies the first buffer whose format differs from
// the first one passed to Join.
type FormatMismatchError struct {
	Index    int
	Expected Format
	Actual   Format
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("%s: buffer %d is %s, expected %s", ErrIncompatibleFormat, e.Index, e.Actual, e.Expected)
}

func (e *FormatMismatchError) Unwrap() error {
	return ErrIncompatibleFormat
}

// Join concatenates the buffers in the given order into a new buffer.
//
// All buffers must share the sample rate and channel count of the first one;
// nothing is resampled or remixed.
func Join(bufs ...*Buffer) (*Buffer, error) {
	if len(bufs) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFew, len(bufs))
	}

	for i, b := range bufs {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}
	}

	expected := bufs[0].Format()
	total := 0

	for i, b := range bufs {
		if actual := b.Format(); actual != expected {
			return nil, &FormatMismatchError{Index: i, Expected: expected, Actual: actual}
		}

		total += b.FrameCount()
	}

	out := &Buffer{
		SampleRate: expected.SampleRate,
		Channels:   make([][]float32, expected.NumChannels),
	}

	for c := range out.Channels {
		ch := make([]float32, 0, total)
		for _, b := range bufs {
			ch = append(ch, b.Channels[c]...)
		}

		out.Channels[c] = ch
	}

	return out, nil
}
