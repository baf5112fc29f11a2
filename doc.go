// SPDX-License-Identifier: EPL-2.0

// Package audmix mixes independent PCM streams into shared output buffers
// in real time.
//
// The engine lives in the mixer subpackage: tracks of any sample rate,
// channel layout and sample format are pulled once per fixed-size period,
// converted, resampled, scaled by their per-channel gain and summed into
// their main buffer without allocating or blocking. This package adds a
// convenience pipeline on top of it.
//
// # Supported Formats
//
// Streams come from the format decoders:
//   - WAV (8, 16, 24 and 32-bit PCM) via formats/wav
//   - AIFF (16, 24 and 32-bit PCM) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// or from raw PCM through audio.NewByteStream.
//
// # Quick Start
//
//	voice, _ := wav.Decoder{}.Decode(voiceFile)
//	music, _ := mp3.Decoder{}.Decode(musicFile)
//
//	mixed, err := audmix.MixToInt16(ctx, []audmix.Input{
//	    {Stream: voice, Volume: 1},
//	    {Stream: music, Volume: 0.3, FadeIn: true},
//	}, audmix.Config{SampleRate: 48000, ChannelMask: pcm.ChannelStereo, Period: 480})
//
// Mix does the same but hands every period to a callback, so long inputs
// can be written out as they are mixed:
//
//	enc, _ := wav.NewEncoder(out, 48000, 2)
//	err := audmix.Mix(ctx, inputs, cfg, enc.Write)
//
// # Driving the Mixer Directly
//
// Real-time callers own the period clock and use mixer.Mixer themselves:
//
//	m, _ := mixer.New(480, 48000)
//	_ = m.Create(1, pcm.ChannelStereo, pcm.PCM16, 0)
//	m.SetBufferProvider(1, src)
//	m.SetParameter(1, mixer.TargetTrack, mixer.ParamMainBuffer, out)
//	m.SetParameter(1, mixer.TargetVolume, mixer.ParamVolume0, float32(1))
//	m.SetParameter(1, mixer.TargetVolume, mixer.ParamVolume1, float32(1))
//	m.Enable(1)
//	for range ticks {
//	    m.Process()
//	}
//
// See the individual subpackages for more detailed documentation.
package audmix
