// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"

	"github.com/ik5/audmix/pcm"
)

// blockSize is the frame granularity of the generic non-resampling path.
const blockSize = 16

type blockScratch struct {
	f [blockSize * pcm.MaxChannels]float32
	q [blockSize * pcm.MaxChannels]int32
}

func (m *Mixer) run() {
	switch m.strategy {
	case strategyNop:
		m.processNop()
	case strategyGeneric:
		m.processGeneric()
	case strategyResampling:
		m.processResampling()
	case strategyOneTrack:
		m.processOneTrack()
	}
}

func (m *Mixer) useFloat() bool {
	return m.inFormat == pcm.PCMFloat
}

// processNop clears each group's buffer and drains its providers.
func (m *Mixer) processNop() {
	for gi := range m.groups {
		g := &m.groups[gi]
		t0 := m.tracks.get(g.tracks[0])
		clearSink(g.out, t0.mixerFormat, m.frameCount*t0.mixerChannelCount)

		for _, h := range g.tracks {
			t := m.tracks.get(h)
			b := &t.in.buf
			for left := m.frameCount; left > 0; {
				b.FrameCount = left
				t.provider.NextBuffer(b)
				if b.Data == nil {
					break
				}
				got := b.FrameCount
				t.provider.ReleaseBuffer(b)
				if got <= 0 {
					break
				}
				left -= got
			}
		}
	}
}

// processGeneric mixes each group block by block, pulling input directly.
func (m *Mixer) processGeneric() {
	float := m.useFloat()
	for gi := range m.groups {
		g := &m.groups[gi]
		for _, h := range g.tracks {
			m.tracks.get(h).acquire(m.frameCount, float)
		}

		t0 := m.tracks.get(g.tracks[0])
		ch0 := t0.mixerChannelCount
		for done := 0; done < m.frameCount; {
			block := min(blockSize, m.frameCount-done)
			clear(m.block.f[:])
			clear(m.block.q[:])

			for _, h := range g.tracks {
				t := m.tracks.get(h)
				var aux []float32
				if t.needs&needsAux != 0 {
					aux = t.auxBuffer[done:]
				}
				ch := t.mixerChannelCount
				for left := block; left > 0; {
					if !t.in.held {
						break
					}
					if n := min(t.in.frames, left); n > 0 {
						off := (block - left) * ch
						m.mixTrack(t, off, n, aux, float)
						left -= n
						if aux != nil {
							aux = aux[n:]
						}
					}
					if t.in.frames == 0 && left > 0 {
						t.release()
						if !t.acquire(m.frameCount-done-(block-left), float) {
							break
						}
					}
				}
			}

			m.writeSink(g.out, t0.mixerFormat, done*ch0, block*ch0, float)
			done += block
		}

		for _, h := range g.tracks {
			m.tracks.get(h).release()
		}
	}
}

// mixTrack runs a non-resampling kernel over n held frames into the block
// accumulator at sample offset off.
func (m *Mixer) mixTrack(t *track, off, n int, aux []float32, float bool) {
	switch t.kernel.kind {
	case trackNop:
	case trackNoResample, trackNoResampleMono, trackNoResampleStereo:
		ramp := t.needsRamp()
		if float {
			t.mixFloat(m.block.f[off:], n, t.in.floats(n), aux, ramp, true)
		} else {
			t.mixFixed(m.block.q[off:], n, t.in.ints(n), aux, ramp, true)
		}
	default:
		panic(fmt.Errorf("%w: kernel %v on the direct path", ErrBadParameter, t.kernel.kind))
	}
	t.in.consume(n)
}

// processResampling mixes whole periods per group, pulling resampled
// tracks through their resamplers.
func (m *Mixer) processResampling() {
	float := m.useFloat()
	frames := m.frameCount
	for gi := range m.groups {
		g := &m.groups[gi]
		t0 := m.tracks.get(g.tracks[0])
		ch0 := t0.mixerChannelCount
		clear(m.outF[:frames*ch0])
		clear(m.outQ[:frames*ch0])

		for _, h := range g.tracks {
			t := m.tracks.get(h)
			var aux []float32
			if t.needs&needsAux != 0 {
				aux = t.auxBuffer
			}

			if t.needs&needsResample != 0 {
				m.resampleTrack(t, frames, aux, float)
				continue
			}

			ch := t.mixerChannelCount
			for done := 0; done < frames; {
				if !t.acquire(frames-done, float) {
					break
				}
				n := t.in.frames
				var a []float32
				if aux != nil {
					a = aux[done:]
				}
				m.mixPeriod(t, done*ch, n, a, float)
				done += n
				t.release()
			}
		}

		if float {
			writeFloat(g.out, t0.mixerFormat, 0, m.outF[:frames*ch0])
		} else {
			writeFixed(g.out, t0.mixerFormat, 0, m.outQ[:frames*ch0])
		}
	}
}

// mixPeriod is mixTrack against the period accumulator.
func (m *Mixer) mixPeriod(t *track, off, n int, aux []float32, float bool) {
	if t.kernel.kind != trackNop {
		ramp := t.needsRamp()
		if float {
			t.mixFloat(m.outF[off:], n, t.in.floats(n), aux, ramp, true)
		} else {
			t.mixFixed(m.outQ[off:], n, t.in.ints(n), aux, ramp, true)
		}
	}
	t.in.consume(n)
}

// resampleTrack pulls a period through the track's resampler. A constant
// gain the resampler can apply itself goes straight to the accumulator;
// otherwise the resampler runs at unity into scratch and the kernel
// applies gain, ramp and aux afterwards.
func (m *Mixer) resampleTrack(t *track, frames int, aux []float32, float bool) {
	r := t.resampler
	r.SetSampleRate(t.sampleRate)
	ramp := t.needsRamp()
	ch := t.mixerChannelCount

	if float && !ramp && aux == nil && (t.mix == mixMulti || t.mix == mixMultiMonoVol) {
		l, rv := t.volume[0].target, t.volume[1].target
		if t.mix == mixMultiMonoVol {
			rv = l
		}
		r.SetVolume(l, rv)
		r.Resample(m.outF[:frames*ch], frames, t)
		return
	}

	inCh := t.in.channels
	temp := m.tempF[:frames*inCh]
	clear(temp)
	r.SetVolume(1, 1)
	r.Resample(temp, frames, t)

	if float {
		t.mixFloat(m.outF, frames, temp, aux, ramp, true)
		return
	}
	ti := m.tempI16[:frames*inCh]
	pcm.ConvertFloatToInt16(ti, temp)
	t.mixFixed(m.outQ, frames, ti, aux, ramp, true)
}

// processOneTrack mixes the only enabled track straight into its buffer.
// It runs only without ramp, aux or resampler, and matches the generic
// path bit for bit.
func (m *Mixer) processOneTrack() {
	float := m.useFloat()
	t := m.tracks.get(m.enabled[0])
	ch := t.mixerChannelCount
	out := t.mainBuffer

	for done := 0; done < m.frameCount; {
		if !t.acquire(m.frameCount-done, float) {
			clearSinkFrom(out, t.mixerFormat, done*ch, (m.frameCount-done)*ch)
			return
		}
		n := t.in.frames
		if float {
			t.writeDirectFloat(out, done*ch, n)
		} else {
			t.writeDirectFixed(out, done*ch, n)
		}
		t.in.consume(n)
		done += n
		t.release()
	}
}

func (t *track) writeDirectFloat(out *Output, off, frames int) {
	ch := t.mixerChannelCount
	inCh := t.in.channels
	in := t.in.floats(frames)
	g := t.floatGains()
	for f := range frames {
		src := in[f*inCh : f*inCh+inCh]
		base := off + f*ch
		for c := range ch {
			s := src[0]
			if inCh > 1 {
				s = src[c]
			}
			v := s * g[t.gidx[c]]
			if t.mixerFormat == pcm.PCM16 {
				out.I16[base+c] = pcm.Float32ToInt16(v)
			} else {
				out.F32[base+c] = v
			}
		}
	}
}

func (t *track) writeDirectFixed(out *Output, off, frames int) {
	ch := t.mixerChannelCount
	inCh := t.in.channels
	in := t.in.ints(frames)
	g := t.fixedGains()
	for f := range frames {
		src := in[f*inCh : f*inCh+inCh]
		base := off + f*ch
		for c := range ch {
			s := int32(src[0])
			if inCh > 1 {
				s = int32(src[c])
			}
			v := s * g[t.gidx[c]]
			if t.mixerFormat == pcm.PCM16 {
				out.I16[base+c] = pcm.Q427ToInt16(v)
			} else {
				out.F32[base+c] = pcm.Q427ToFloat32(v)
			}
		}
	}
}

// writeSink converts samples from the block accumulator to the sink at
// sample offset off.
func (m *Mixer) writeSink(out *Output, format pcm.Format, off, samples int, float bool) {
	if float {
		writeFloat(out, format, off, m.block.f[:samples])
		return
	}
	writeFixed(out, format, off, m.block.q[:samples])
}

func writeFloat(out *Output, format pcm.Format, off int, acc []float32) {
	switch format {
	case pcm.PCMFloat:
		pcm.ConvertFloatToFloat(out.F32[off:off+len(acc)], acc)
	case pcm.PCM16:
		pcm.ConvertFloatToInt16(out.I16[off:off+len(acc)], acc)
	default:
		panic(fmt.Errorf("%w: float -> %v", pcm.ErrBadFormatPair, format))
	}
}

func writeFixed(out *Output, format pcm.Format, off int, acc []int32) {
	switch format {
	case pcm.PCMFloat:
		pcm.ConvertQ427ToFloat(out.F32[off:off+len(acc)], acc)
	case pcm.PCM16:
		pcm.ConvertQ427ToInt16(out.I16[off:off+len(acc)], acc)
	default:
		panic(fmt.Errorf("%w: q4.27 -> %v", pcm.ErrBadFormatPair, format))
	}
}

func clearSink(out *Output, format pcm.Format, samples int) {
	clearSinkFrom(out, format, 0, samples)
}

func clearSinkFrom(out *Output, format pcm.Format, off, samples int) {
	switch format {
	case pcm.PCMFloat:
		clear(out.F32[off : off+samples])
	case pcm.PCM16:
		clear(out.I16[off : off+samples])
	default:
		panic(fmt.Errorf("%w: %v", pcm.ErrBadFormatPair, format))
	}
}
