// SPDX-License-Identifier: EPL-2.0

// Package mixer combines any number of PCM tracks into shared output
// buffers once per fixed-size period.
//
// Each track carries its own sample rate, channel layout, sample format and
// per-channel gain. Tracks that point at the same Output form a group; a
// group's accumulator is written to its Output exactly once per period.
//
// # Basic Usage
//
//	m, err := mixer.New(256, 48000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out := &mixer.Output{I16: make([]int16, 256*2)}
//
//	if err := m.Create(1, pcm.ChannelStereo, pcm.PCM16, 0); err != nil {
//	    log.Fatal(err)
//	}
//	m.SetBufferProvider(1, provider)
//	m.SetParameter(1, mixer.TargetTrack, mixer.ParamMainBuffer, out)
//	m.SetParameter(1, mixer.TargetVolume, mixer.ParamVolume0, float32(1))
//	m.SetParameter(1, mixer.TargetVolume, mixer.ParamVolume1, float32(1))
//	m.Enable(1)
//
//	for {
//	    m.Process() // out now holds one period
//	}
//
// # Strategy
//
// Mutations only mark the mixer dirty. The next Process call rebuilds the
// enabled set and the groups, picks a kernel per track and a strategy for
// the whole mix, runs one period and then settles: tracks whose gain ended
// at zero drop to a no-op kernel, and a lone 16-bit-or-float track with no
// ramp, aux send or resampler is mixed straight into its Output.
//
// Process never allocates once a strategy is settled and never blocks on
// anything but its providers, which must not block either.
//
// # Volume
//
// Gains live in [0, 1]. TargetRampVolume ramps linearly over one period,
// TargetVolume applies at once. Both are tracked in float and in U4.12 /
// U4.28 fixed point so the 16-bit accumulator path ramps with its own
// integer arithmetic.
//
// # Errors
//
// Create returns ErrInvalidChannelMask or ErrInvalidFormat. Unknown ids,
// duplicate ids and unknown parameters panic with an error wrapping
// ErrUnknownTrack, ErrTrackExists or ErrBadParameter.
package mixer
