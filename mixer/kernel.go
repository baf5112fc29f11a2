// SPDX-License-Identifier: EPL-2.0

package mixer

import "github.com/ik5/audmix/pcm"

// needs is the capability mask derived for each enabled track.
type needs uint32

const (
	needsChannelCountMask needs = 0x7 // channel count - 1
	needsChannel1         needs = 0x0
	needsChannel2         needs = 0x1
	needsMute             needs = 0x100
	needsResample         needs = 0x1000
	needsAux              needs = 0x10000
)

func (n needs) channelClass() needs { return n & needsChannelCountMask }

// deriveNeeds computes a track's needs. A ramping track is never muted
// since its gain is still moving, and a resampling track is never muted
// since its resampler keeps pulling.
func deriveNeeds(channels int, resampling, aux, ramping, muted bool) needs {
	n := needsChannel1 + needs(channels-1)&needsChannelCountMask
	if resampling {
		n |= needsResample
	}
	if aux {
		n |= needsAux
	}
	if !ramping && !resampling && muted {
		n |= needsMute
	}
	return n
}

// trackType names a per-track kernel.
type trackType uint8

const (
	trackNop trackType = iota
	trackResample
	trackResampleMono
	trackResampleStereo
	trackNoResample
	trackNoResampleMono
	trackNoResampleStereo
)

func (k trackType) String() string {
	switch k {
	case trackNop:
		return "nop"
	case trackResample:
		return "resample"
	case trackResampleMono:
		return "resample-mono"
	case trackResampleStereo:
		return "resample-stereo"
	case trackNoResample:
		return "noresample"
	case trackNoResampleMono:
		return "noresample-mono"
	case trackNoResampleStereo:
		return "noresample-stereo"
	default:
		return "unknown"
	}
}

// kernelKey selects a kernel: the track type plus the accumulator and sink
// formats and the mixer channel count it runs with.
type kernelKey struct {
	kind      trackType
	channels  int
	inFormat  pcm.Format
	outFormat pcm.Format
}

// selectKernel maps a track's needs and layouts onto a kernel key.
func selectKernel(n needs, trackMask, mixerMask pcm.ChannelMask, inFormat, outFormat pcm.Format) kernelKey {
	key := kernelKey{
		kind:      trackNop,
		channels:  mixerMask.Count(),
		inFormat:  inFormat,
		outFormat: outFormat,
	}
	if n&needsMute != 0 {
		return key
	}

	mono := n.channelClass() == needsChannel1 && trackMask == pcm.ChannelMono && mixerMask.IsPosition()
	stereo := n.channelClass() >= needsChannel2 && trackMask == pcm.ChannelStereo && mixerMask.IsPosition()

	if n&needsResample != 0 {
		switch {
		case mono:
			key.kind = trackResampleMono
		case stereo:
			key.kind = trackResampleStereo
		default:
			key.kind = trackResample
		}
		return key
	}

	switch {
	case mono:
		key.kind = trackNoResampleMono
	case stereo:
		key.kind = trackNoResampleStereo
	default:
		key.kind = trackNoResample
	}
	return key
}

// mixType says how gains map onto mixer channels.
type mixType uint8

const (
	mixMulti          mixType = iota // gain per channel, at most two channels
	mixMultiMonoVol                  // left gain on every channel
	mixMultiStereoVol                // left, right or center gain by speaker side
	mixMonoExpand                    // one input sample to every channel, gain by side
)

// gain slots
const (
	gainLeft   = 0
	gainRight  = 1
	gainCenter = 2
)

// mixLayout derives the mix type and the gain slot of each mixer channel.
func mixLayout(key kernelKey, mixerMask pcm.ChannelMask) (mixType, [pcm.MaxChannels]uint8) {
	var gidx [pcm.MaxChannels]uint8
	var mt mixType

	switch key.kind {
	case trackResampleMono, trackNoResampleMono:
		mt = mixMonoExpand
	case trackResampleStereo, trackNoResampleStereo:
		mt = mixMultiStereoVol
		if key.channels <= 2 {
			mt = mixMulti
		}
	default:
		mt = mixMultiMonoVol
		if key.channels <= 2 {
			mt = mixMulti
		}
	}

	switch mt {
	case mixMulti:
		for c := range min(key.channels, 2) {
			gidx[c] = uint8(c)
		}
	case mixMultiStereoVol, mixMonoExpand:
		gidx = mixerMask.Side()
		if key.channels == 1 {
			gidx[0] = gainLeft
		}
	}
	return mt, gidx
}

// floatGains returns the constant gains per slot.
func (t *track) floatGains() [3]float32 {
	l, r := t.volume[0].target, t.volume[1].target
	return [3]float32{l, r, (l + r) * 0.5}
}

// fixedGains returns the constant U4.12 gains per slot.
func (t *track) fixedGains() [3]int32 {
	l, r := int32(t.volume[0].itarget), int32(t.volume[1].itarget)
	return [3]int32{l, r, (l + r) >> 1}
}

// mixFloat accumulates frames of in into out with float gains. aux, when
// set, receives the channel average at the aux level. adjust completes
// ramps once the frames are mixed.
func (t *track) mixFloat(out []float32, frames int, in []float32, aux []float32, ramp, adjust bool) {
	ch := t.mixerChannelCount
	inCh := t.in.channels
	gidx := &t.gidx
	invIn := 1 / float32(inCh)

	if !ramp {
		g := t.floatGains()
		a := t.aux.target
		for f := range frames {
			src := in[f*inCh : f*inCh+inCh]
			dst := out[f*ch : f*ch+ch]
			if inCh == 1 {
				s := src[0]
				for c := range dst {
					dst[c] += s * g[gidx[c]]
				}
			} else {
				for c := range dst {
					dst[c] += src[c] * g[gidx[c]]
				}
			}
			if aux != nil {
				aux[f] += average(src, invIn) * a
			}
		}
		return
	}

	v0, v1 := t.volume[0].prev, t.volume[1].prev
	d0, d1 := t.volume[0].inc, t.volume[1].inc
	a, da := t.aux.prev, t.aux.inc
	for f := range frames {
		g := [3]float32{v0, v1, (v0 + v1) * 0.5}
		src := in[f*inCh : f*inCh+inCh]
		dst := out[f*ch : f*ch+ch]
		if inCh == 1 {
			s := src[0]
			for c := range dst {
				dst[c] += s * g[gidx[c]]
			}
		} else {
			for c := range dst {
				dst[c] += src[c] * g[gidx[c]]
			}
		}
		if aux != nil {
			aux[f] += average(src, invIn) * a
			a += da
		}
		v0 += d0
		v1 += d1
	}
	t.volume[0].prev, t.volume[1].prev = v0, v1
	if aux != nil {
		t.aux.prev = a
	}
	if adjust {
		t.adjustVolumeRamp(frames, aux != nil, true)
	}
}

// mixFixed accumulates 16-bit input into a Q4.27 accumulator. Gains are
// U4.12 when constant and U4.28 while ramping; the aux send stays float.
func (t *track) mixFixed(out []int32, frames int, in []int16, aux []float32, ramp, adjust bool) {
	ch := t.mixerChannelCount
	inCh := t.in.channels
	gidx := &t.gidx
	invIn := 1 / float32(inCh) / 32768

	if !ramp {
		g := t.fixedGains()
		a := t.aux.target
		for f := range frames {
			src := in[f*inCh : f*inCh+inCh]
			dst := out[f*ch : f*ch+ch]
			if inCh == 1 {
				s := int32(src[0])
				for c := range dst {
					dst[c] += s * g[gidx[c]]
				}
			} else {
				for c := range dst {
					dst[c] += int32(src[c]) * g[gidx[c]]
				}
			}
			if aux != nil {
				aux[f] += averageInt(src, invIn) * a
			}
		}
		return
	}

	v0, v1 := t.volume[0].iprev, t.volume[1].iprev
	d0, d1 := t.volume[0].iinc, t.volume[1].iinc
	a, da := t.aux.prev, t.aux.inc
	for f := range frames {
		l, r := v0>>16, v1>>16
		g := [3]int32{l, r, (l + r) >> 1}
		src := in[f*inCh : f*inCh+inCh]
		dst := out[f*ch : f*ch+ch]
		if inCh == 1 {
			s := int32(src[0])
			for c := range dst {
				dst[c] += s * g[gidx[c]]
			}
		} else {
			for c := range dst {
				dst[c] += int32(src[c]) * g[gidx[c]]
			}
		}
		if aux != nil {
			aux[f] += averageInt(src, invIn) * a
			a += da
		}
		v0 += d0
		v1 += d1
	}
	t.volume[0].iprev, t.volume[1].iprev = v0, v1
	if aux != nil {
		t.aux.prev = a
	}
	if adjust {
		t.adjustVolumeRamp(frames, aux != nil, false)
	}
}

// adjustVolumeRamp completes finished ramps. The aux level always ramps
// in float.
func (t *track) adjustVolumeRamp(frames int, aux, useFloat bool) {
	t.volume[0].adjust(frames, useFloat)
	t.volume[1].adjust(frames, useFloat)
	if aux {
		t.aux.adjust(frames, true)
	}
}

func average(src []float32, inv float32) float32 {
	var sum float32
	for _, s := range src {
		sum += s
	}
	return sum * inv
}

func averageInt(src []int16, inv float32) float32 {
	var sum int32
	for _, s := range src {
		sum += int32(s)
	}
	return float32(sum) * inv
}
