// SPDX-License-Identifier: EPL-2.0

// Command audmix mixes the audio files listed in a config file into one
// 16-bit WAV file.
//
//	audmix -config mix.yaml
//
// Every setting can be overridden from the environment with the AUDMIX_
// prefix, for example AUDMIX_OUTPUT=- to write the WAV to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/internal/logging"
	"github.com/ik5/audmix/mixer"
)

func main() {
	configFilePath := flag.String("config", "audmix.yaml", "Set the file path to the mix description.")
	flag.Parse()

	if err := run(*configFilePath); err != nil {
		slog.Error("mix failed", "err", err)
		os.Exit(1)
	}
}

func newRegistry() *audio.Registry {
	registry := audio.NewRegistry()
	registry.Register("wav", wav.Decoder{})
	registry.Register("aiff", aiff.Decoder{})
	registry.Register("mp3", mp3.Decoder{})
	registry.Register("vorbis", vorbis.Decoder{})
	return registry
}

func run(configFilePath string) error {
	cfg, err := config.Load(configFilePath)
	if err != nil {
		return err
	}

	logFilePointer, err := logging.ConfigureDefaultLogger(cfg.LogLevel, cfg.LogFile, slog.HandlerOptions{})
	if err != nil {
		return err
	}
	if logFilePointer != nil {
		defer logFilePointer.Close()
	}

	log := slog.Default().With("run", uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inputs, closeInputs, err := openInputs(log, newRegistry(), cfg.Inputs)
	if err != nil {
		return err
	}
	defer closeInputs()

	// validated by config.Load
	accumulator, _ := cfg.AccumulatorFormat()
	quality, _ := cfg.ResampleQuality()

	mixCfg := audmix.Config{
		SampleRate:  cfg.SampleRate,
		ChannelMask: cfg.ChannelMask(),
		Period:      cfg.Period,
		MixerOptions: []mixer.Option{
			mixer.WithLogger(log),
			mixer.WithMixerInFormat(accumulator),
			mixer.WithResampleQuality(quality),
		},
	}

	frames, err := writeMix(ctx, cfg, inputs, mixCfg)
	if err != nil {
		return err
	}

	log.Info("mix written",
		"output", cfg.Output,
		"frames", frames,
		"seconds", float64(frames)/float64(cfg.SampleRate),
	)
	return nil
}

// openInputs decodes every input. The returned func closes the files.
func openInputs(log *slog.Logger, registry *audio.Registry, cfgInputs []config.Input) ([]audmix.Input, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	inputs := make([]audmix.Input, 0, len(cfgInputs))
	for _, in := range cfgInputs {
		f, err := os.Open(in.Path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("%w", err)
		}
		files = append(files, f)

		src, err := registry.Decode(in.DecoderName(), f)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("%s: %w", in.Path, err)
		}

		log.Info("input opened",
			"path", in.Path,
			"decoder", in.DecoderName(),
			"sampleRate", src.SampleRate(),
			"channels", src.ChannelMask().Count(),
			"format", src.Format().String(),
			"volume", in.Gain(),
		)
		inputs = append(inputs, audmix.Input{Stream: src, Volume: in.Gain(), FadeIn: in.FadeIn})
	}
	return inputs, closeAll, nil
}

// writeMix mixes into cfg.Output and returns the number of frames written.
// Files are written period by period; stdout gets the whole mix at once
// since the WAV header needs its final size up front.
func writeMix(ctx context.Context, cfg *config.Config, inputs []audmix.Input, mixCfg audmix.Config) (int, error) {
	channels := cfg.Channels

	if cfg.Output == "-" {
		mixed, err := audmix.MixToInt16(ctx, inputs, mixCfg)
		if err != nil {
			return 0, err
		}
		if err := wav.WriteWAV16(os.Stdout, cfg.SampleRate, channels, mixed); err != nil {
			return 0, err
		}
		return len(mixed) / channels, nil
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	defer out.Close()

	enc, err := wav.NewEncoder(out, cfg.SampleRate, channels)
	if err != nil {
		return 0, err
	}

	frames := 0
	err = audmix.Mix(ctx, inputs, mixCfg, func(period []int16) error {
		frames += len(period) / channels
		return enc.Write(period)
	})
	if err != nil {
		return 0, err
	}
	if err := enc.Close(); err != nil {
		return 0, err
	}
	return frames, nil
}
