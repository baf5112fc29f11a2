// SPDX-License-Identifier: EPL-2.0

package mixer_test

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/pcm"
)

// Example_twoTracks mixes two stereo tracks into one output at different
// volumes.
func Example_twoTracks() {
	m, err := mixer.New(4, 48000, mixer.WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		fmt.Println(err)
		return
	}

	out := &mixer.Output{I16: make([]int16, 4*2)}
	sources := map[int]int16{1: 1000, 2: 400}
	volumes := map[int]float32{1: 0.5, 2: 1}

	for id := 1; id <= 2; id++ {
		if err := m.Create(id, pcm.ChannelStereo, pcm.PCM16, 0); err != nil {
			fmt.Println(err)
			return
		}
		v := audiotest.Int16(sources[id])
		m.SetBufferProvider(id, audiotest.NewMockProvider(pcm.PCM16, 2, -1, audiotest.Constant(v, -v)))
		m.SetParameter(id, mixer.TargetTrack, mixer.ParamMainBuffer, out)
		m.SetParameter(id, mixer.TargetVolume, mixer.ParamVolume0, volumes[id])
		m.SetParameter(id, mixer.TargetVolume, mixer.ParamVolume1, volumes[id])
		m.Enable(id)
	}

	m.Process()
	fmt.Printf("%q\n", m.TrackNames())
	fmt.Println(out.I16)
	// Output:
	// "1 2"
	// [900 -900 900 -900 900 -900 900 -900]
}

// Example_volumeRamp ramps a track from silence to full scale over one
// period.
func Example_volumeRamp() {
	m, err := mixer.New(4, 48000, mixer.WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		fmt.Println(err)
		return
	}

	out := &mixer.Output{F32: make([]float32, 4)}
	if err := m.Create(7, pcm.ChannelMono, pcm.PCMFloat, 0); err != nil {
		fmt.Println(err)
		return
	}
	m.SetBufferProvider(7, audiotest.NewMockProvider(pcm.PCMFloat, 1, -1, audiotest.Constant(1)))
	m.SetParameter(7, mixer.TargetTrack, mixer.ParamMainBuffer, out)
	m.SetParameter(7, mixer.TargetTrack, mixer.ParamMixerFormat, pcm.PCMFloat)
	m.SetParameter(7, mixer.TargetTrack, mixer.ParamMixerChannelMask, pcm.ChannelMono)
	m.SetParameter(7, mixer.TargetRampVolume, mixer.ParamVolume0, float32(1))
	m.Enable(7)

	m.Process()
	fmt.Println(out.F32)
	m.Process()
	fmt.Println(out.F32)
	// Output:
	// [0 0.25 0.5 0.75]
	// [1 1 1 1]
}
