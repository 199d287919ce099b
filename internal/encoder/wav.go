package encoder

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/satindergrewal/brownnoise/internal/audio"
)

const (
	wavFormatPCM = 1
	chunkSamples = 4096
)

// WAVSink writes mono 16-bit PCM WAV files.
type WAVSink struct {
	f       *os.File
	enc     *wav.Encoder
	buf     *goaudio.IntBuffer
	started bool
}

// CreateWAV creates path and prepares a WAV encoder for f.
func CreateWAV(path string, f audio.Format) (*WAVSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &WAVSink{
		f:   file,
		enc: wav.NewEncoder(file, f.SampleRate, f.BitDepth, f.Channels, wavFormatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
			Data:           make([]int, 0, chunkSamples),
			SourceBitDepth: f.BitDepth,
		},
	}, nil
}

// WriteSample buffers one sample, flushing full chunks to the encoder.
func (s *WAVSink) WriteSample(v int16) error {
	s.buf.Data = append(s.buf.Data, int(v))
	if len(s.buf.Data) == chunkSamples {
		return s.flush()
	}
	return nil
}

func (s *WAVSink) flush() error {
	// The encoder emits its header on the first Write, so an empty run
	// still flushes once.
	if len(s.buf.Data) == 0 && s.started {
		return nil
	}
	if err := s.enc.Write(s.buf); err != nil {
		return fmt.Errorf("wav encode: %w", err)
	}
	s.started = true
	s.buf.Data = s.buf.Data[:0]
	return nil
}

// Close flushes pending samples, patches the RIFF sizes and closes the file.
func (s *WAVSink) Close() error {
	err := s.flush()
	if err == nil {
		err = s.enc.Close()
	}
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadWAV decodes a 16-bit mono WAV file.
func ReadWAV(path string) ([]int16, audio.Format, error) {
	var format audio.Format

	f, err := os.Open(path)
	if err != nil {
		return nil, format, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, format, fmt.Errorf("%s: not a valid wav file", path)
	}
	format = audio.Format{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
	}
	if format.BitDepth != audio.BitDepth {
		return nil, format, fmt.Errorf("%w: %d-bit wav", ErrFormat, format.BitDepth)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, format, fmt.Errorf("wav decode %s: %w", path, err)
	}
	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return samples, format, nil
}
