package wavedit

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when a trim window is empty or inverted once
// converted to frames.
var ErrInvalidRange = errors.New("invalid time range")

// TimeRange is a window in seconds from the start of a buffer.
type TimeRange struct {
	Start float64
	End   float64
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%gs, %gs)", r.Start, r.End)
}

// Trim returns a copy of b restricted to r.
//
// Both bounds are rounded to the nearest frame, so the cut can land up to one
// sample period away from the requested time.
func Trim(b *Buffer, r TimeRange) (*Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if math.IsNaN(r.Start) || math.IsNaN(r.End) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}

	rate := float64(b.SampleRate)

	start, end := secondsToFrame(r.Start, rate), secondsToFrame(r.End, rate)

	out, err := TrimFrames(b, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, r)
	}

	return out, nil
}

// TrimFrames returns a copy of the frames [start, end) of b. Indexes are
// clamped to the buffer.
func TrimFrames(b *Buffer, start, end int) (*Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	frames := b.FrameCount()
	start = clampInt(start, 0, frames)
	end = clampInt(end, 0, frames)

	if start >= end {
		return nil, fmt.Errorf("%w: frames %d..%d of %d", ErrInvalidRange, start, end, frames)
	}

	out := &Buffer{
		SampleRate: b.SampleRate,
		Channels:   make([][]float32, len(b.Channels)),
	}
	for i, ch := range b.Channels {
		out.Channels[i] = append(make([]float32, 0, end-start), ch[start:end]...)
	}

	return out, nil
}

func secondsToFrame(seconds, rate float64) int {
	idx := math.Round(seconds * rate)
	// keep the conversion to int well defined, clampInt finishes the job
	if idx < 0 {
		return 0
	}

	if idx > math.MaxInt32 {
		return math.MaxInt32
	}

	return int(idx)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
