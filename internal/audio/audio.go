package audio

import (
	"errors"
	"math"
)

const (
	DefaultSampleRate = 44100
	Channels          = 1
	BitDepth          = 16
	FullScale         = math.MaxInt16 // float amplitude 1.0 maps to this sample value
)

var (
	// ErrConfig reports a stage parameter outside its accepted range.
	ErrConfig = errors.New("invalid parameter")
	// ErrConstruction reports filter parameters that admit no coefficients.
	ErrConstruction = errors.New("filter construction failed")
)

// Format describes the PCM layout shared by every stage of a run.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// MonoFormat returns the mono 16-bit format at the given rate.
func MonoFormat(sampleRate int) Format {
	return Format{SampleRate: sampleRate, Channels: Channels, BitDepth: BitDepth}
}

// ToSample rounds x to the nearest integer and clips it to the int16 range.
// NaN maps to silence.
func ToSample(x float64) int16 {
	if math.IsNaN(x) {
		return 0
	}
	r := math.Round(x)
	if r > math.MaxInt16 {
		return math.MaxInt16
	} else if r < math.MinInt16 {
		return math.MinInt16
	}
	return int16(r)
}

// NumSamples is the sequence length for a run, zero for non-positive inputs.
func NumSamples(durationSec, sampleRate int) int {
	if durationSec <= 0 || sampleRate <= 0 {
		return 0
	}
	return durationSec * sampleRate
}
