package wavedit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JoinedName is the file name used for joined output.
const JoinedName = "joined_audio.wav"

// TrimmedName returns the file name used for a trimmed copy of src, i.e.
// "trimmed_<stem>.wav".
func TrimmedName(src string) string {
	return "trimmed_" + Stem(src) + ".wav"
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadFile decodes the audio file at path.
func LoadFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return b, nil
}

// SaveFile encodes b as WAV and writes it to path, replacing any existing
// file.
func SaveFile(path string, b *Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	if _, err := b.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}

	return f.Close()
}
