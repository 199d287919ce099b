package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/satindergrewal/brownnoise/internal/audio"
	"github.com/satindergrewal/brownnoise/internal/encoder"
)

// ErrInvalid reports a configuration value outside its accepted range.
var ErrInvalid = errors.New("invalid configuration")

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// Config holds all runtime configuration, loaded from environment variables
// and command-line flags.
type Config struct {
	// Output
	Duration   int    // seconds
	SampleRate int    // Hz
	Output     string // file path
	Format     string // wav, opus, pcm

	// Signal chain
	Cutoff      float64 // low-pass cutoff, Hz
	WarbleHz    float64 // LFO frequency
	WarbleDepth float64 // 0 = no modulation, 1 = full swing
	Blend       float64 // mix weight of the second input
	Mode        string  // mixed or direct

	Seed        uint64 // 0 seeds from entropy
	OpusBitrate int    // bits per second
}

// Load reads configuration from environment variables with sane defaults,
// then applies command-line flags from args (without the program name).
func Load(args []string) (Config, error) {
	cfg := Config{
		Duration:   envInt("NOISE_DURATION", 60),
		SampleRate: envInt("NOISE_SAMPLE_RATE", audio.DefaultSampleRate),
		Output:     envStr("NOISE_OUTPUT", "brown_noise.wav"),
		Format:     envStr("NOISE_FORMAT", string(encoder.KindWAV)),

		Cutoff:      envFloat("NOISE_CUTOFF", 900),
		WarbleHz:    envFloat("NOISE_WARBLE_HZ", 1.0),
		WarbleDepth: envFloat("NOISE_WARBLE_DEPTH", 0.5),
		Blend:       envFloat("NOISE_BLEND", 0.5),
		Mode:        envStr("NOISE_MODE", string(audio.ModeMixed)),

		Seed:        envUint("NOISE_SEED", 0),
		OpusBitrate: envInt("NOISE_OPUS_BITRATE", 64000),
	}

	fs := flag.NewFlagSet("brownnoise", flag.ContinueOnError)
	fs.IntVar(&cfg.Duration, "duration", cfg.Duration, "duration in seconds")
	fs.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "sample rate in Hz")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "output file path")
	fs.Float64Var(&cfg.Cutoff, "cutoff", cfg.Cutoff, "low-pass cutoff frequency in Hz")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every value against the range its stage accepts.
func (c Config) Validate() error {
	switch {
	case c.Duration < 0:
		return fmt.Errorf("%w: duration %d must not be negative", ErrInvalid, c.Duration)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalid, c.SampleRate)
	case !(c.Cutoff > 0 && c.Cutoff < float64(c.SampleRate)/2):
		return fmt.Errorf("%w: cutoff %g Hz must be between 0 and %g", ErrInvalid, c.Cutoff, float64(c.SampleRate)/2)
	case !inUnit(c.WarbleDepth):
		return fmt.Errorf("%w: warble depth %g outside [0, 1]", ErrInvalid, c.WarbleDepth)
	case !inUnit(c.Blend):
		return fmt.Errorf("%w: blend %g outside [0, 1]", ErrInvalid, c.Blend)
	case !(c.WarbleHz >= 0) || math.IsInf(c.WarbleHz, 1):
		return fmt.Errorf("%w: warble frequency %g Hz", ErrInvalid, c.WarbleHz)
	case c.Output == "":
		return fmt.Errorf("%w: empty output path", ErrInvalid)
	}

	if m := audio.Mode(c.Mode); m != audio.ModeMixed && m != audio.ModeDirect {
		return fmt.Errorf("%w: mode %q, want mixed or direct", ErrInvalid, c.Mode)
	}
	kind, err := encoder.ParseKind(c.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if kind == encoder.KindOpus && !encoder.OpusRateSupported(c.SampleRate) {
		return fmt.Errorf("%w: opus output needs 8000, 12000, 16000, 24000 or 48000 Hz, got %d", ErrInvalid, c.SampleRate)
	}
	return nil
}

// Pipeline returns the pipeline parameters for this configuration.
func (c Config) Pipeline() audio.PipelineConfig {
	return audio.PipelineConfig{
		Duration:    c.Duration,
		SampleRate:  c.SampleRate,
		Cutoff:      c.Cutoff,
		WarbleHz:    c.WarbleHz,
		WarbleDepth: c.WarbleDepth,
		Blend:       c.Blend,
		Mode:        audio.Mode(c.Mode),
		Output:      c.Output,
	}
}

func inUnit(x float64) bool {
	return x >= 0 && x <= 1
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
