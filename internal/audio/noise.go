package audio

import "math/rand/v2"

// brownLeak is the feedback gain of the integrator turning white into brown noise.
const brownLeak = 0.5

// NoiseSource draws white noise from an owned random source.
type NoiseSource struct {
	rng *rand.Rand
}

// NewRand returns a PCG-backed generator. Seed 0 seeds from runtime entropy.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewNoiseSource creates a noise source. A nil rng is replaced by an entropy-seeded one.
func NewNoiseSource(rng *rand.Rand) *NoiseSource {
	if rng == nil {
		rng = NewRand(0)
	}
	return &NoiseSource{rng: rng}
}

// white returns a uniform value in [-1, 1).
func (n *NoiseSource) white() float64 {
	return n.rng.Float64()*2 - 1
}

// Generate returns durationSec*sampleRate samples of brown noise.
// Each output is acc = (acc + w) * 0.5 for a fresh white draw w.
func (n *NoiseSource) Generate(durationSec, sampleRate int) []int16 {
	out := make([]int16, NumSamples(durationSec, sampleRate))
	acc := 0.0
	for i := range out {
		acc += n.white()
		acc *= brownLeak
		out[i] = ToSample(acc * FullScale)
	}
	return out
}

// White returns unintegrated uniform noise of the same length as Generate.
func (n *NoiseSource) White(durationSec, sampleRate int) []int16 {
	out := make([]int16, NumSamples(durationSec, sampleRate))
	for i := range out {
		out[i] = ToSample(n.white() * FullScale)
	}
	return out
}
