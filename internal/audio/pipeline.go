package audio

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
)

// Mode selects how the pipeline writes its output.
type Mode string

const (
	// ModeMixed blends the warble layers with the filtered signal into one file.
	ModeMixed Mode = "mixed"
	// ModeDirect writes every intermediate stage to its own file, unmixed.
	ModeDirect Mode = "direct"
)

// Sink receives samples in order and is finalized exactly once.
type Sink interface {
	WriteSample(s int16) error
	Close() error
}

// SinkOpener creates the sink for one output file.
type SinkOpener func(path string, f Format) (Sink, error)

// PipelineConfig holds the parameters of one generation run.
type PipelineConfig struct {
	Duration    int // seconds
	SampleRate  int
	Cutoff      float64 // low-pass cutoff, Hz
	WarbleHz    float64 // LFO frequency
	WarbleDepth float64
	Blend       float64
	Mode        Mode
	Output      string
}

// Stages holds every sequence produced by one render.
type Stages struct {
	Raw          []int16
	Filtered     []int16
	Warble       []int16
	WarbleOffset []int16 // second pass over Warble
	Layered      []int16 // mixed mode only
	Final        []int16 // mixed mode only
}

type output struct {
	path    string
	samples []int16
}

// Pipeline composes noise, filter, warble and mix stages.
type Pipeline struct {
	cfg   PipelineConfig
	noise *NoiseSource
	open  SinkOpener
}

// NewPipeline creates a pipeline drawing from noise and writing through open.
func NewPipeline(cfg PipelineConfig, noise *NoiseSource, open SinkOpener) *Pipeline {
	if cfg.Mode == "" {
		cfg.Mode = ModeMixed
	}
	return &Pipeline{cfg: cfg, noise: noise, open: open}
}

// Render computes all stages in memory.
func (p *Pipeline) Render() (Stages, error) {
	var st Stages
	cfg := p.cfg

	if cfg.Mode != ModeMixed && cfg.Mode != ModeDirect {
		return st, fmt.Errorf("%w: unknown mode %q", ErrConfig, cfg.Mode)
	}

	lp, err := NewLowPass(cfg.Cutoff, cfg.SampleRate)
	if err != nil {
		return st, err
	}
	warbler, err := NewWarbler(cfg.WarbleHz, cfg.SampleRate, cfg.WarbleDepth)
	if err != nil {
		return st, err
	}

	st.Raw = p.noise.Generate(cfg.Duration, cfg.SampleRate)
	st.Filtered = lp.Apply(st.Raw)
	st.Warble = warbler.Apply(st.Filtered, 0)

	if cfg.Mode == ModeDirect {
		st.WarbleOffset = warbler.Apply(st.Warble, 0)
		return st, nil
	}

	st.WarbleOffset = warbler.Apply(st.Warble, cfg.SampleRate/2)
	if st.Layered, err = Mix(st.Warble, st.WarbleOffset, cfg.Blend); err != nil {
		return st, err
	}
	if st.Final, err = Mix(st.Layered, st.Filtered, cfg.Blend); err != nil {
		return st, err
	}
	return st, nil
}

// Run renders and writes the configured outputs. Returns the written paths.
func (p *Pipeline) Run() ([]string, error) {
	st, err := p.Render()
	if err != nil {
		return nil, err
	}

	format := MonoFormat(p.cfg.SampleRate)
	outputs := []output{{p.cfg.Output, st.Final}}
	if p.cfg.Mode == ModeDirect {
		outputs = []output{
			{StagePath(p.cfg.Output, "raw"), st.Raw},
			{StagePath(p.cfg.Output, "filtered"), st.Filtered},
			{StagePath(p.cfg.Output, "warble"), st.Warble},
			{StagePath(p.cfg.Output, "warble2"), st.WarbleOffset},
		}
	}

	var written []string
	for _, o := range outputs {
		if err := WriteSequence(p.open, o.path, format, o.samples); err != nil {
			return written, err
		}
		log.Printf("Wrote %s (%d samples, %d Hz)", o.path, len(o.samples), format.SampleRate)
		written = append(written, o.path)
	}
	return written, nil
}

// StagePath derives a per-stage file name: "out.wav" + "raw" -> "out_raw.wav".
func StagePath(output, stage string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_" + stage + ext
}

// WriteSequence opens a sink, writes every sample in order and finalizes it.
// The sink is closed even when a write fails.
func WriteSequence(open SinkOpener, path string, f Format, samples []int16) error {
	sink, err := open(path, f)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	for i, s := range samples {
		if err := sink.WriteSample(s); err != nil {
			sink.Close()
			return fmt.Errorf("write %s sample %d: %w", path, i, err)
		}
	}
	if err := sink.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}
