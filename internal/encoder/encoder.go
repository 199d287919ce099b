// Package encoder writes sample sequences to audio container files.
package encoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satindergrewal/brownnoise/internal/audio"
)

// Kind names an output container.
type Kind string

const (
	KindWAV  Kind = "wav"
	KindOpus Kind = "opus"
	KindPCM  Kind = "pcm" // headerless s16le
)

var (
	ErrUnknownKind     = errors.New("unknown output format")
	ErrUnsupportedRate = errors.New("unsupported sample rate")
	ErrFormat          = errors.New("unsupported sample format")
)

// Options tunes encoders that have settings.
type Options struct {
	OpusBitrate int // bits per second, 0 keeps the encoder default
}

// ParseKind maps a format name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindWAV, KindOpus, KindPCM:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Open returns a SinkOpener for kind.
func Open(kind Kind, opts Options) audio.SinkOpener {
	return func(path string, f audio.Format) (audio.Sink, error) {
		if f.Channels != audio.Channels || f.BitDepth != audio.BitDepth {
			return nil, fmt.Errorf("%w: %d channels, %d bits", ErrFormat, f.Channels, f.BitDepth)
		}
		switch kind {
		case KindWAV, "":
			return CreateWAV(path, f)
		case KindOpus:
			return CreateOpus(path, f, opts.OpusBitrate)
		case KindPCM:
			return CreatePCM(path)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
