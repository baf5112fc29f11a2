// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"fmt"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/pcm"
)

// Input is one stream taking part in a mix.
type Input struct {
	Stream audio.Stream
	// Volume is the linear gain applied to every channel, 1 for unity.
	Volume float32
	// FadeIn ramps the volume up from silence over the first period.
	FadeIn bool
}

// Config describes the mixed signal.
type Config struct {
	SampleRate  int
	ChannelMask pcm.ChannelMask
	// Period is the number of frames mixed per step.
	Period int
	// MixerOptions are passed on to mixer.New.
	MixerOptions []mixer.Option
}

// Mix pulls every input through a mixer and hands each mixed period to
// sink as interleaved int16 samples laid out per cfg.ChannelMask. Inputs of
// any rate, layout and sample format are converted by the mixer.
//
// Mixing stops once every stream is exhausted and fully drained from its
// resampler. The last period is padded with silence. The slice passed to
// sink is reused for the next period.
//
// Example:
//
//	f, _ := os.Open("voice.wav")
//	src, _ := wav.Decoder{}.Decode(f)
//	err := audmix.Mix(ctx, []audmix.Input{{Stream: src, Volume: 1}},
//	    audmix.Config{SampleRate: 48000, ChannelMask: pcm.ChannelStereo, Period: 480},
//	    func(period []int16) error { return enc.Write(period) })
func Mix(ctx context.Context, inputs []Input, cfg Config, sink func(period []int16) error) error {
	if len(inputs) == 0 {
		return ErrNoInputs
	}
	if !mixer.IsValidChannelMask(cfg.ChannelMask) {
		return fmt.Errorf("%w: channel mask %#x", ErrInvalidOutput, uint32(cfg.ChannelMask))
	}

	m, err := mixer.New(cfg.Period, cfg.SampleRate, cfg.MixerOptions...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}

	out := &mixer.Output{I16: make([]int16, cfg.Period*cfg.ChannelMask.Count())}
	live := make([]bool, len(inputs))

	for i, in := range inputs {
		id := i + 1
		if err := m.Create(id, in.Stream.ChannelMask(), in.Stream.Format(), 0); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		m.SetParameter(id, mixer.TargetTrack, mixer.ParamMixerFormat, pcm.PCM16)
		m.SetParameter(id, mixer.TargetTrack, mixer.ParamMixerChannelMask, cfg.ChannelMask)
		m.SetParameter(id, mixer.TargetTrack, mixer.ParamMainBuffer, out)
		m.SetParameter(id, mixer.TargetResample, mixer.ParamSampleRate, in.Stream.SampleRate())

		volume := mixer.TargetVolume
		if in.FadeIn {
			volume = mixer.TargetRampVolume
		}
		m.SetParameter(id, volume, mixer.ParamVolume0, in.Volume)
		m.SetParameter(id, volume, mixer.ParamVolume1, in.Volume)

		m.SetBufferProvider(id, in.Stream)
		m.Enable(id)
		live[i] = true
	}

	for remaining := len(inputs); remaining > 0; {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w", err)
		}

		m.Process()

		for i, in := range inputs {
			if !live[i] {
				continue
			}
			if err := in.Stream.Err(); err != nil {
				return fmt.Errorf("%w: input %d: %w", ErrInputFailed, i, err)
			}
			if in.Stream.Done() && m.UnreleasedFrames(i+1) == 0 {
				m.Disable(i + 1)
				live[i] = false
				remaining--
			}
		}

		if err := sink(out.I16); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// MixToInt16 is Mix collecting every period into one slice.
func MixToInt16(ctx context.Context, inputs []Input, cfg Config) ([]int16, error) {
	var mixed []int16
	err := Mix(ctx, inputs, cfg, func(period []int16) error {
		mixed = append(mixed, period...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mixed, nil
}
