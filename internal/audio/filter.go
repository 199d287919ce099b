package audio

import (
	"fmt"
	"math"
)

// ButterworthQ gives a maximally flat second-order pass band.
const ButterworthQ = 1 / math.Sqrt2

// LowPass is a second-order Butterworth low-pass biquad in transposed
// direct form II.
type LowPass struct {
	b0, b1, b2, a1, a2 float64
	z1, z2             float64
}

// NewLowPass derives the biquad coefficients for cutoffHz at sampleRate.
// The cutoff must lie strictly between 0 and the Nyquist frequency.
func NewLowPass(cutoffHz float64, sampleRate int) (*LowPass, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d must be positive", ErrConstruction, sampleRate)
	}
	nyquist := float64(sampleRate) / 2
	if math.IsNaN(cutoffHz) || cutoffHz <= 0 || cutoffHz >= nyquist {
		return nil, fmt.Errorf("%w: cutoff %g Hz outside (0, %g)", ErrConstruction, cutoffHz, nyquist)
	}

	w0 := 2 * math.Pi * cutoffHz / float64(sampleRate)
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * ButterworthQ)
	a0 := 1 + alpha

	return &LowPass{
		b0: (1 - cosw) / 2 / a0,
		b1: (1 - cosw) / a0,
		b2: (1 - cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}, nil
}

// Reset clears the delay line.
func (f *LowPass) Reset() {
	f.z1, f.z2 = 0, 0
}

// Filter processes one sample.
func (f *LowPass) Filter(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

// Apply filters in from a zeroed state and returns a new sequence.
func (f *LowPass) Apply(in []int16) []int16 {
	f.Reset()
	out := make([]int16, len(in))
	for i, s := range in {
		out[i] = ToSample(f.Filter(float64(s)))
	}
	return out
}

// LowPassFilter builds a fresh filter and applies it to in.
func LowPassFilter(in []int16, cutoffHz float64, sampleRate int) ([]int16, error) {
	f, err := NewLowPass(cutoffHz, sampleRate)
	if err != nil {
		return nil, err
	}
	return f.Apply(in), nil
}
