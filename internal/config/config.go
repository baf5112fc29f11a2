// SPDX-License-Identifier: EPL-2.0

// Package config loads the description of a mix for the audmix command.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ik5/audmix/pcm"
	"github.com/ik5/audmix/resample"
)

var (
	ErrReadConfig    = errors.New("cannot read config")
	ErrInvalidConfig = errors.New("invalid config")
)

// EnvPrefix prefixes environment overrides, e.g. AUDMIX_SAMPLERATE=44100.
const EnvPrefix = "AUDMIX"

// Input is one file to mix.
type Input struct {
	Path string `mapstructure:"path"`
	// Format names the decoder; empty means guess from the extension.
	Format string   `mapstructure:"format"`
	Volume *float64 `mapstructure:"volume"`
	FadeIn bool     `mapstructure:"fadein"`
}

// Gain returns the configured volume, or unity when none is set.
func (in Input) Gain() float32 {
	if in.Volume == nil {
		return 1
	}
	return float32(*in.Volume)
}

// DecoderName returns the registry key of the decoder for the input.
func (in Input) DecoderName() string {
	if in.Format != "" {
		return strings.ToLower(in.Format)
	}
	switch strings.ToLower(filepath.Ext(in.Path)) {
	case ".wav", ".wave":
		return "wav"
	case ".aif", ".aiff":
		return "aiff"
	case ".mp3":
		return "mp3"
	case ".ogg", ".oga":
		return "vorbis"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(in.Path)), ".")
	}
}

type Config struct {
	LogLevel string `mapstructure:"loglevel"`
	LogFile  string `mapstructure:"logfile"`

	// Output is the WAV file to write, "-" for stdout.
	Output      string  `mapstructure:"output"`
	SampleRate  int     `mapstructure:"samplerate"`
	Channels    int     `mapstructure:"channels"`
	Period      int     `mapstructure:"period"`
	Accumulator string  `mapstructure:"accumulator"`
	Quality     string  `mapstructure:"quality"`
	Inputs      []Input `mapstructure:"inputs"`
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("loglevel", "info")
	v.SetDefault("logfile", "")
	v.SetDefault("output", "mix.wav")
	v.SetDefault("samplerate", 48000)
	v.SetDefault("channels", 2)
	v.SetDefault("period", 480)
	v.SetDefault("accumulator", "float")
	v.SetDefault("quality", "auto")
}

// Load reads the config file at path, applies AUDMIX_* environment
// overrides on top and validates the result. An empty path uses defaults
// and the environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setViperDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case len(c.Inputs) == 0:
		return fmt.Errorf("%w: no inputs", ErrInvalidConfig)
	case c.Output == "":
		return fmt.Errorf("%w: no output", ErrInvalidConfig)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: samplerate %d", ErrInvalidConfig, c.SampleRate)
	case c.Channels < 1 || c.Channels > pcm.MaxChannels:
		return fmt.Errorf("%w: channels %d", ErrInvalidConfig, c.Channels)
	case c.Period <= 0:
		return fmt.Errorf("%w: period %d", ErrInvalidConfig, c.Period)
	}

	if _, err := c.AccumulatorFormat(); err != nil {
		return err
	}
	if _, err := c.ResampleQuality(); err != nil {
		return err
	}
	for i, in := range c.Inputs {
		if in.Path == "" {
			return fmt.Errorf("%w: input %d has no path", ErrInvalidConfig, i)
		}
		if in.Volume != nil && (*in.Volume < 0 || *in.Volume > 1) {
			return fmt.Errorf("%w: input %d volume %v outside [0, 1]", ErrInvalidConfig, i, *in.Volume)
		}
	}
	return nil
}

// ChannelMask returns the output layout for the channel count.
func (c *Config) ChannelMask() pcm.ChannelMask {
	return pcm.StereoOrMultichannel(c.Channels)
}

// AccumulatorFormat maps "float" and "pcm16" to the mixer's accumulator
// format.
func (c *Config) AccumulatorFormat() (pcm.Format, error) {
	switch strings.ToLower(c.Accumulator) {
	case "float":
		return pcm.PCMFloat, nil
	case "pcm16", "fixed":
		return pcm.PCM16, nil
	default:
		return pcm.FormatInvalid, fmt.Errorf("%w: accumulator %q", ErrInvalidConfig, c.Accumulator)
	}
}

func (c *Config) ResampleQuality() (resample.Quality, error) {
	switch strings.ToLower(c.Quality) {
	case "auto", "":
		return resample.QualityAuto, nil
	case "low":
		return resample.QualityLow, nil
	case "default":
		return resample.QualityDefault, nil
	case "high":
		return resample.QualityHigh, nil
	default:
		return resample.QualityAuto, fmt.Errorf("%w: quality %q", ErrInvalidConfig, c.Quality)
	}
}
