package wavedit

import (
	"errors"
	"fmt"
	"math"
)

// DefaultBuckets is the waveform resolution used by the tools.
const DefaultBuckets = 200

// ErrDegenerateInput indicates a waveform was requested for an empty buffer or
// with no buckets.
var ErrDegenerateInput = errors.New("degenerate waveform input")

// Waveform is a normalized amplitude envelope. Every value is in [0, 1].
type Waveform []float32

// Max returns the largest bucket value, or 0 for an empty waveform.
func (w Waveform) Max() float32 {
	var peak float32
	for _, v := range w {
		peak = max(peak, v)
	}

	return peak
}

// Summarize reduces the first channel of b to buckets mean-absolute values,
// normalized so the loudest bucket is 1.
//
// Each bucket covers FrameCount()/buckets consecutive samples. Samples left
// over by that integer division are not part of any bucket.
func Summarize(b *Buffer, buckets int) (Waveform, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("%w: %d buckets", ErrDegenerateInput, buckets)
	}

	frames := b.FrameCount()
	if frames == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrDegenerateInput)
	}

	blockSize := frames / buckets
	if blockSize == 0 {
		return nil, fmt.Errorf("%w: %d frames can't fill %d buckets", ErrDegenerateInput, frames, buckets)
	}

	samples := b.Channels[0]
	sums := make([]float64, buckets)

	var peak float64

	for i := range sums {
		var sum float64
		for _, s := range samples[i*blockSize : (i+1)*blockSize] {
			sum += math.Abs(float64(s))
		}

		sums[i] = sum / float64(blockSize)
		peak = max(peak, sums[i])
	}

	out := make(Waveform, buckets)
	if peak == 0 {
		return out, nil
	}

	for i, v := range sums {
		out[i] = float32(v / peak)
	}

	return out, nil
}
