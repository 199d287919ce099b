package encoder_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satindergrewal/brownnoise/internal/audio"
	"github.com/satindergrewal/brownnoise/internal/encoder"
)

func writeAll(t *testing.T, kind encoder.Kind, path string, f audio.Format, samples []int16) {
	t.Helper()
	require.NoError(t, audio.WriteSequence(encoder.Open(kind, encoder.Options{}), path, f, samples))
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]encoder.Kind{
		"wav":   encoder.KindWAV,
		"WAV":   encoder.KindWAV,
		" opus": encoder.KindOpus,
		"pcm":   encoder.KindPCM,
	} {
		got, err := encoder.ParseKind(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := encoder.ParseKind("flac")
	require.ErrorIs(t, err, encoder.ErrUnknownKind)
}

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.wav")
	samples := []int16{0, 1, -1, 32767, -32768, 12345, -6789}
	// Span several encoder chunks.
	for i := 0; i < 10000; i++ {
		samples = append(samples, int16(i*7-30000))
	}

	writeAll(t, encoder.KindWAV, path, audio.MonoFormat(22050), samples)

	got, format, err := encoder.ReadWAV(path)
	require.NoError(t, err)
	require.Equal(t, audio.MonoFormat(22050), format)
	require.Equal(t, samples, got)
}

func TestWAVHeaderFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hdr.wav")
	writeAll(t, encoder.KindWAV, path, audio.MonoFormat(8000), make([]int16, 8000))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	requireWAVHeader(t, data, 8000, 8000)
}

func TestWAVEmptyIsValidContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	writeAll(t, encoder.KindWAV, path, audio.MonoFormat(44100), nil)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	requireWAVHeader(t, data, 44100, 0)
}

// requireWAVHeader checks a canonical 44-byte mono 16-bit PCM header.
func requireWAVHeader(t *testing.T, data []byte, rate, samples int) {
	t.Helper()
	require.Len(t, data, 44+samples*2)
	le := binary.LittleEndian
	require.Equal(t, "RIFF", string(data[0:4]))
	require.Equal(t, uint32(len(data)-8), le.Uint32(data[4:8]))
	require.Equal(t, "WAVE", string(data[8:12]))
	require.Equal(t, "fmt ", string(data[12:16]))
	require.Equal(t, uint16(1), le.Uint16(data[20:22]), "PCM format tag")
	require.Equal(t, uint16(1), le.Uint16(data[22:24]), "channels")
	require.Equal(t, uint32(rate), le.Uint32(data[24:28]), "sample rate")
	require.Equal(t, uint32(rate*2), le.Uint32(data[28:32]), "byte rate")
	require.Equal(t, uint16(2), le.Uint16(data[32:34]), "block align")
	require.Equal(t, uint16(16), le.Uint16(data[34:36]), "bits per sample")
	require.Equal(t, "data", string(data[36:40]))
	require.Equal(t, uint32(samples*2), le.Uint32(data[40:44]), "data size")
}

func TestPCMRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.pcm")
	samples := make([]int16, 5000)
	for i := range samples {
		samples[i] = int16(i - 2500)
	}
	writeAll(t, encoder.KindPCM, path, audio.MonoFormat(8000), samples)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, samples, audio.BytesToSamples(data))
}

func TestOpusWritesOggStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.opus")
	samples := audio.NewNoiseSource(audio.NewRand(1)).Generate(1, 8000)
	// A partial trailing frame must be padded, not dropped.
	samples = append(samples, 1, 2, 3)

	opener := encoder.Open(encoder.KindOpus, encoder.Options{OpusBitrate: 32000})
	require.NoError(t, audio.WriteSequence(opener, path, audio.MonoFormat(8000), samples))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "OggS", string(data[:4]))
	require.True(t, bytes.Contains(data, []byte("OpusHead")))
	require.True(t, bytes.Contains(data, []byte("OpusTags")))
	// 51 audio pages after the two header pages.
	require.Equal(t, 53, bytes.Count(data, []byte("OggS")))
}

func TestOpusRejectsRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.opus")
	_, err := encoder.CreateOpus(path, audio.MonoFormat(44100), 0)
	require.ErrorIs(t, err, encoder.ErrUnsupportedRate)
	require.False(t, encoder.OpusRateSupported(44100))
	require.True(t, encoder.OpusRateSupported(48000))
}

func TestOpenRejectsStereo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	_, err := encoder.Open(encoder.KindWAV, encoder.Options{})(path, audio.Format{SampleRate: 8000, Channels: 2, BitDepth: 16})
	require.ErrorIs(t, err, encoder.ErrFormat)
}

func TestOpenBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.wav")
	for _, kind := range []encoder.Kind{encoder.KindWAV, encoder.KindPCM} {
		err := audio.WriteSequence(encoder.Open(kind, encoder.Options{}), path, audio.MonoFormat(8000), []int16{1})
		require.Error(t, err, kind)
	}
}
