// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audmix/pcm"
)

// Target is the first level of the parameter address.
type Target int

const (
	TargetTrack      Target = 0x3000
	TargetResample   Target = 0x3001
	TargetRampVolume Target = 0x3002 // ramp to the new volume over one period
	TargetVolume     Target = 0x3003 // apply at once
)

func (t Target) String() string {
	switch t {
	case TargetTrack:
		return "track"
	case TargetResample:
		return "resample"
	case TargetRampVolume:
		return "ramp-volume"
	case TargetVolume:
		return "volume"
	default:
		return fmt.Sprintf("target(%#x)", int(t))
	}
}

// Param is the second level of the parameter address.
type Param int

// TargetTrack parameters.
const (
	ParamChannelMask         Param = 0x4000 // pcm.ChannelMask
	ParamFormat              Param = 0x4001 // pcm.Format
	ParamMainBuffer          Param = 0x4002 // *Output
	ParamAuxBuffer           Param = 0x4003 // []float32
	ParamMixerFormat         Param = 0x4005 // pcm.Format, PCM16 or PCMFloat
	ParamMixerChannelMask    Param = 0x4006 // pcm.ChannelMask
	ParamTeeBuffer           Param = 0x400A // []byte
	ParamTeeBufferFrameCount Param = 0x400C // int
)

// TargetResample parameters.
const (
	ParamSampleRate Param = 0x4100 // int
	ParamReset      Param = 0x4101 // value ignored
	ParamRemove     Param = 0x4102 // value ignored
)

// TargetRampVolume and TargetVolume parameters, all float32.
const (
	ParamVolume0  Param = 0x4200
	ParamVolume1  Param = 0x4201
	ParamAuxLevel Param = 0x4210
)

const maxVolumes = 2

func (p Param) String() string {
	switch p {
	case ParamChannelMask:
		return "channel-mask"
	case ParamFormat:
		return "format"
	case ParamMainBuffer:
		return "main-buffer"
	case ParamAuxBuffer:
		return "aux-buffer"
	case ParamMixerFormat:
		return "mixer-format"
	case ParamMixerChannelMask:
		return "mixer-channel-mask"
	case ParamTeeBuffer:
		return "tee-buffer"
	case ParamTeeBufferFrameCount:
		return "tee-buffer-frame-count"
	case ParamSampleRate:
		return "sample-rate"
	case ParamReset:
		return "reset"
	case ParamRemove:
		return "remove"
	case ParamVolume0:
		return "volume0"
	case ParamVolume1:
		return "volume1"
	case ParamAuxLevel:
		return "aux-level"
	default:
		return fmt.Sprintf("param(%#x)", int(p))
	}
}

// SetParameter changes one track parameter. The value type is fixed per
// parameter; a wrong type or an unknown target/param pair panics with
// ErrBadParameter.
func (m *Mixer) SetParameter(id int, target Target, param Param, value any) {
	t := m.tracks.mustLookup(id)

	switch target {
	case TargetTrack:
		m.setTrackParameter(t, param, value)
	case TargetResample:
		m.setResampleParameter(t, param, value)
	case TargetRampVolume, TargetVolume:
		ramp := 0
		if target == TargetRampVolume {
			ramp = m.frameCount
		}
		var g *gain
		switch {
		case param == ParamAuxLevel:
			g = &t.aux
		case param >= ParamVolume0 && param < ParamVolume0+maxVolumes:
			g = &t.volume[param-ParamVolume0]
		default:
			panic(badParam(target, param))
		}
		if g.set(valueAs[float32](target, param, value), ramp) {
			m.log.Debug("setParameter", slog.Int("track", t.id), slog.String("target", target.String()),
				slog.String("param", param.String()), slog.Float64("value", float64(g.target)))
			m.invalidate()
		}
	default:
		panic(badParam(target, param))
	}
}

func (m *Mixer) setTrackParameter(t *track, param Param, value any) {
	changed := false
	switch param {
	case ParamChannelMask:
		mask := valueAs[pcm.ChannelMask](TargetTrack, param, value)
		if !mask.IsValid() {
			panic(fmt.Errorf("%w: channel mask %#x", ErrBadParameter, uint32(mask)))
		}
		changed = t.setChannelMasks(m, mask, t.mixerChannelMask)
	case ParamMixerChannelMask:
		mask := valueAs[pcm.ChannelMask](TargetTrack, param, value)
		if !mask.IsValid() {
			panic(fmt.Errorf("%w: mixer channel mask %#x", ErrBadParameter, uint32(mask)))
		}
		changed = t.setChannelMasks(m, t.channelMask, mask)
	case ParamFormat:
		f := valueAs[pcm.Format](TargetTrack, param, value)
		if !f.IsValid() {
			panic(fmt.Errorf("%w: format %v", ErrBadParameter, f))
		}
		if t.format != f {
			t.release()
			t.format = f
			t.teeOffset = 0
			changed = true
		}
	case ParamMixerFormat:
		f := valueAs[pcm.Format](TargetTrack, param, value)
		if f != pcm.PCM16 && f != pcm.PCMFloat {
			panic(fmt.Errorf("%w: mixer format %v", ErrBadParameter, f))
		}
		if t.mixerFormat != f {
			t.mixerFormat = f
			changed = true
		}
	case ParamMainBuffer:
		out := valueAs[*Output](TargetTrack, param, value)
		if t.mainBuffer != out {
			t.mainBuffer = out
			changed = true
		}
	case ParamAuxBuffer:
		aux := valueAs[[]float32](TargetTrack, param, value)
		if !sameBacking(t.auxBuffer, aux) {
			t.auxBuffer = aux
			changed = true
		}
	case ParamTeeBuffer:
		tee := valueAs[[]byte](TargetTrack, param, value)
		if !sameBacking(t.teeBuffer, tee) {
			t.teeBuffer = tee
			t.teeOffset = 0
			changed = true
		}
	case ParamTeeBufferFrameCount:
		n := valueAs[int](TargetTrack, param, value)
		if t.teeFrameCount != n {
			t.teeFrameCount = n
			t.teeOffset = 0
			changed = true
		}
	default:
		panic(badParam(TargetTrack, param))
	}

	if changed {
		m.log.Debug("setParameter", slog.Int("track", t.id), slog.String("target", TargetTrack.String()),
			slog.String("param", param.String()), slog.Any("value", value))
		m.invalidate()
	}
}

func (m *Mixer) setResampleParameter(t *track, param Param, value any) {
	switch param {
	case ParamSampleRate:
		rate := valueAs[int](TargetResample, param, value)
		if rate <= 0 {
			panic(fmt.Errorf("%w: sample rate %d", ErrBadParameter, rate))
		}
		if !t.setResampler(m, rate) {
			return
		}
	case ParamReset:
		if t.resampler != nil {
			t.resampler.Reset()
		}
	case ParamRemove:
		t.resampler = nil
		t.sampleRate = m.sampleRate
	default:
		panic(badParam(TargetResample, param))
	}
	m.log.Debug("setParameter", slog.Int("track", t.id), slog.String("target", TargetResample.String()),
		slog.String("param", param.String()), slog.Int("rate", t.sampleRate))
	m.invalidate()
}

func valueAs[T any](target Target, param Param, value any) T {
	v, ok := value.(T)
	if !ok {
		panic(fmt.Errorf("%w: %v/%v: unexpected value type %T", ErrBadParameter, target, param, value))
	}
	return v
}

func badParam(target Target, param Param) error {
	return fmt.Errorf("%w: %v/%v", ErrBadParameter, target, param)
}

func wrapParam(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrBadParameter, fmt.Sprintf(format, args...), err)
}

// sameBacking reports whether a and b are the same slice view.
func sameBacking[S ~[]E, E any](a, b S) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
