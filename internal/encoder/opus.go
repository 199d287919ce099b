package encoder

import (
	"fmt"
	"time"

	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
	"gopkg.in/hraban/opus.v2"

	"github.com/satindergrewal/brownnoise/internal/audio"
)

const (
	opusFrameDuration = 20 * time.Millisecond
	opusClockRate     = 48000 // Ogg Opus granule positions always count at 48 kHz
	opusMaxPacket     = 4000
)

// OpusSink encodes 20ms Opus frames into an Ogg file.
type OpusSink struct {
	ogg     *oggwriter.OggWriter
	enc     *opus.Encoder
	frame   []int16
	packet  []byte
	seq     uint16
	ts      uint32
	tsStep  uint32
	pending int
}

// OpusRateSupported reports whether libopus accepts rate as input.
func OpusRateSupported(rate int) bool {
	switch rate {
	case 8000, 12000, 16000, 24000, 48000:
		return true
	}
	return false
}

// CreateOpus creates an Ogg Opus file at path. bitrate 0 keeps the libopus default.
func CreateOpus(path string, f audio.Format, bitrate int) (*OpusSink, error) {
	if !OpusRateSupported(f.SampleRate) {
		return nil, fmt.Errorf("%w: opus needs 8000, 12000, 16000, 24000 or 48000 Hz, got %d", ErrUnsupportedRate, f.SampleRate)
	}

	enc, err := opus.NewEncoder(f.SampleRate, f.Channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("opus encoder: %w", err)
	}
	if bitrate > 0 {
		if err := enc.SetBitrate(bitrate); err != nil {
			return nil, fmt.Errorf("opus bitrate %d: %w", bitrate, err)
		}
	}

	ogg, err := oggwriter.New(path, uint32(f.SampleRate), uint16(f.Channels))
	if err != nil {
		return nil, err
	}

	frameSize := f.SampleRate * int(opusFrameDuration/time.Millisecond) / 1000
	return &OpusSink{
		ogg:    ogg,
		enc:    enc,
		frame:  make([]int16, frameSize*f.Channels),
		packet: make([]byte, opusMaxPacket),
		tsStep: uint32(opusClockRate * opusFrameDuration / time.Second),
	}, nil
}

// WriteSample buffers one sample and encodes each completed frame.
func (s *OpusSink) WriteSample(v int16) error {
	s.frame[s.pending] = v
	s.pending++
	if s.pending == len(s.frame) {
		return s.flush()
	}
	return nil
}

func (s *OpusSink) flush() error {
	// Opus only takes whole frames; pad the tail with silence.
	clear(s.frame[s.pending:])
	s.pending = 0

	n, err := s.enc.Encode(s.frame, s.packet)
	if err != nil {
		return fmt.Errorf("opus encode: %w", err)
	}
	pkt := &rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			SequenceNumber: s.seq,
			Timestamp:      s.ts,
		},
		Payload: s.packet[:n],
	}
	s.seq++
	s.ts += s.tsStep
	return s.ogg.WriteRTP(pkt)
}

// Close encodes any partial frame and finalizes the Ogg stream.
func (s *OpusSink) Close() error {
	var err error
	if s.pending > 0 {
		err = s.flush()
	}
	if cerr := s.ogg.Close(); err == nil {
		err = cerr
	}
	return err
}
