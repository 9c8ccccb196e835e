package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Patterns are the file dialog filters for Open.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// Track is a decoded music file. Closing it closes the underlying file.
type Track struct {
	Path     string
	Streamer beep.StreamSeekCloser
	Format   beep.Format
}

func (t *Track) Close() error {
	return t.Streamer.Close()
}

// Open decodes the audio file at path, choosing the decoder by extension.
func Open(path string) (*Track, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &Track{Path: path, Streamer: streamer, Format: format}, nil
}
