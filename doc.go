// Package wavedit trims, joins and re-encodes decoded audio.
//
// Audio is held in a Buffer: a sample rate plus one float32 slice per
// channel. A typical edit decodes a file, summarizes it for display, cuts or
// concatenates it and writes the result as 16-bit PCM WAV:
//
//	buf, err := wavedit.LoadFile("take.aiff")
//	wave, err := wavedit.Summarize(buf, wavedit.DefaultBuckets)
//	cut, err := wavedit.Trim(buf, wavedit.TimeRange{Start: 1.5, End: 4})
//	err = wavedit.SaveFile(wavedit.TrimmedName("take.aiff"), cut)
//
// Summarize, Trim, Join and Encode are pure functions. They never modify
// their inputs and can be called concurrently on any buffers.
//
// Decode understands WAV (integer PCM, IEEE float, A-law, mu-law and
// WAVE_FORMAT_EXTENSIBLE) and AIFF. Compressed formats such as MP3 or FLAC
// are identified and rejected with ErrUnsupportedFormat.
package wavedit
