package encoder

import (
	"bufio"
	"os"

	"github.com/satindergrewal/brownnoise/internal/audio"
)

// PCMSink writes raw little-endian s16 samples, the layout FFmpeg reads with -f s16le.
type PCMSink struct {
	f     *os.File
	w     *bufio.Writer
	chunk []int16
}

// CreatePCM creates path for raw sample output.
func CreatePCM(path string) (*PCMSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &PCMSink{f: f, w: bufio.NewWriter(f), chunk: make([]int16, 0, chunkSamples)}, nil
}

func (s *PCMSink) WriteSample(v int16) error {
	s.chunk = append(s.chunk, v)
	if len(s.chunk) == cap(s.chunk) {
		return s.flush()
	}
	return nil
}

func (s *PCMSink) flush() error {
	_, err := s.w.Write(audio.SamplesToBytes(s.chunk))
	s.chunk = s.chunk[:0]
	return err
}

func (s *PCMSink) Close() error {
	err := s.flush()
	if err == nil {
		err = s.w.Flush()
	}
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}
