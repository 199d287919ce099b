package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/satindergrewal/brownnoise/internal/audio"
	"github.com/satindergrewal/brownnoise/internal/config"
	"github.com/satindergrewal/brownnoise/internal/encoder"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if _, err := run(cfg); err != nil {
		log.Fatalf("brownnoise: %v", err)
	}
}

// run validates cfg, renders the noise and writes the output files.
func run(cfg config.Config) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kind, err := encoder.ParseKind(cfg.Format)
	if err != nil {
		return nil, err
	}

	log.Printf("Generating %ds of brown noise at %d Hz (cutoff %g Hz, warble %g Hz x %g, mode %s, %s)",
		cfg.Duration, cfg.SampleRate, cfg.Cutoff, cfg.WarbleHz, cfg.WarbleDepth, cfg.Mode, kind)

	noise := audio.NewNoiseSource(audio.NewRand(cfg.Seed))
	opener := encoder.Open(kind, encoder.Options{OpusBitrate: cfg.OpusBitrate})
	return audio.NewPipeline(cfg.Pipeline(), noise, opener).Run()
}
