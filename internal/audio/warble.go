package audio

import (
	"fmt"
	"math"
)

// Warbler applies a sine LFO gain envelope (tremolo) to a sequence.
type Warbler struct {
	depth float64
	step  float64 // phase increment per sample, radians
}

// NewWarbler creates a modulator. Depth 0 is unity gain; depth 1 swings the
// gain over [0, 1].
func NewWarbler(lfoHz float64, sampleRate int, depth float64) (*Warbler, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d must be positive", ErrConfig, sampleRate)
	}
	if math.IsNaN(lfoHz) || math.IsInf(lfoHz, 0) || lfoHz < 0 {
		return nil, fmt.Errorf("%w: warble frequency %g Hz", ErrConfig, lfoHz)
	}
	if math.IsNaN(depth) || depth < 0 || depth > 1 {
		return nil, fmt.Errorf("%w: warble depth %g outside [0, 1]", ErrConfig, depth)
	}
	return &Warbler{
		depth: depth,
		step:  2 * math.Pi * lfoHz / float64(sampleRate),
	}, nil
}

// Gain returns the envelope value at phase.
func (w *Warbler) Gain(phase float64) float64 {
	return (math.Sin(phase)+1)/2*w.depth + (1 - w.depth)
}

// Apply returns a modulated copy of in. Samples before startOffset pass
// through untouched and do not advance the LFO.
func (w *Warbler) Apply(in []int16, startOffset int) []int16 {
	out := make([]int16, len(in))
	copy(out, in)
	if startOffset < 0 {
		startOffset = 0
	}

	phase := 0.0
	for i := startOffset; i < len(out); i++ {
		out[i] = ToSample(float64(in[i]) * w.Gain(phase))
		phase = math.Mod(phase+w.step, 2*math.Pi)
	}
	return out
}
