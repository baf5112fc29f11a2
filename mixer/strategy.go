// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audmix/pcm"
)

// strategy is the top-level routine run each period.
type strategy uint8

const (
	strategyNop strategy = iota
	strategyGeneric
	strategyResampling
	strategyOneTrack
)

func (s strategy) String() string {
	switch s {
	case strategyNop:
		return "nop"
	case strategyGeneric:
		return "generic"
	case strategyResampling:
		return "resampling"
	case strategyOneTrack:
		return "one-track"
	default:
		return "unknown"
	}
}

// group is the tracks writing one Output, in ascending id order.
type group struct {
	out    *Output
	tracks []handle
}

// outcome is what a track looks like after the first period of a new
// strategy.
type outcome struct {
	resampling bool
	ramping    bool
	muted      bool
	nop        bool // set by settle
}

// validate rebuilds the enabled set, the groups and every kernel, picks a
// strategy, runs one period and settles.
func (m *Mixer) validate() {
	m.enabled = m.enabled[:0]
	for i := range m.groups {
		m.groups[i].tracks = nil
	}
	m.groups = m.groups[:0]

	all16, resampling, ramping := true, false, false

	for _, id := range m.tracks.order {
		t, h, _ := m.tracks.lookup(id)
		if !t.enabled {
			continue
		}
		m.checkReady(t)

		m.enabled = append(m.enabled, h)
		m.addToGroup(t.mainBuffer, h)

		trackRamp := t.volume[0].ramping() || t.volume[1].ramping()
		if trackRamp {
			ramping = true
		}
		t.needs = deriveNeeds(t.channelCount, t.doesResample(),
			t.aux.target != 0 && t.auxBuffer != nil, trackRamp, t.muted())
		t.kernel = selectKernel(t.needs, t.channelMask, t.mixerChannelMask, t.mixerInFormat, t.mixerFormat)
		t.mix, t.gidx = mixLayout(t.kernel, t.mixerChannelMask)

		if t.needs&needsMute != 0 {
			continue
		}
		if t.needs&(needsAux|needsResample) != 0 {
			all16 = false
		}
		if t.needs&needsResample != 0 {
			resampling = true
		} else if t.needs.channelClass() == needsChannel1 {
			all16 = false
		}
	}

	m.strategy = strategyNop
	if len(m.enabled) > 0 {
		switch {
		case resampling:
			m.allocPeriodScratch()
			m.strategy = strategyResampling
		case all16 && !ramping && len(m.enabled) == 1 &&
			m.tracks.get(m.enabled[0]).needs&needsMute == 0:
			m.strategy = strategyOneTrack
		default:
			m.strategy = strategyGeneric
		}
	}
	m.all16 = all16
	m.dirty = false

	m.log.Debug("mixer configuration change",
		slog.Int("enabled", len(m.enabled)),
		slog.Int("groups", len(m.groups)),
		slog.Bool("all16", all16),
		slog.Bool("resampling", resampling),
		slog.Bool("volumeRamp", ramping),
		slog.String("strategy", m.strategy.String()))

	m.run()

	m.outcomes = m.outcomes[:0]
	for _, h := range m.enabled {
		t := m.tracks.get(h)
		m.outcomes = append(m.outcomes, outcome{
			resampling: t.doesResample(),
			ramping:    t.volume[0].ramping() || t.volume[1].ramping(),
			muted:      t.muted(),
		})
	}
	next := settle(m.strategy, m.all16, m.outcomes)
	for i, o := range m.outcomes {
		if o.nop {
			t := m.tracks.get(m.enabled[i])
			t.needs |= needsMute
			t.kernel.kind = trackNop
		}
	}
	if next != m.strategy {
		m.log.Debug("strategy settled", slog.String("from", m.strategy.String()), slog.String("to", next.String()))
		m.strategy = next
	}
}

// settle picks the strategy for the periods after validation from what the
// first period left behind. Tracks that ended muted without a resampler are
// marked nop. If every track is muted nothing is mixed; a lone uniform
// track with no ramp left takes the direct path.
func settle(current strategy, all16 bool, outcomes []outcome) strategy {
	if len(outcomes) == 0 {
		return current
	}
	allMuted := true
	for i := range outcomes {
		o := &outcomes[i]
		if !o.resampling && o.muted && !o.ramping {
			o.nop = true
		} else {
			allMuted = false
		}
	}
	switch {
	case allMuted:
		return strategyNop
	case all16 && len(outcomes) == 1 && !outcomes[0].ramping:
		return strategyOneTrack
	default:
		return current
	}
}

func (m *Mixer) addToGroup(out *Output, h handle) {
	for i := range m.groups {
		if m.groups[i].out == out {
			m.groups[i].tracks = append(m.groups[i].tracks, h)
			return
		}
	}
	m.groups = append(m.groups, group{out: out, tracks: []handle{h}})
}

// checkReady panics when an enabled track cannot be mixed.
func (m *Mixer) checkReady(t *track) {
	if t.provider == nil || t.mainBuffer == nil {
		panic(fmt.Errorf("%w: track %d", ErrNotReady, t.id))
	}
	samples := m.frameCount * t.mixerChannelCount
	switch t.mixerFormat {
	case pcm.PCM16:
		if len(t.mainBuffer.I16) < samples {
			panic(fmt.Errorf("%w: track %d main buffer holds %d int16 samples, need %d",
				ErrBadParameter, t.id, len(t.mainBuffer.I16), samples))
		}
	case pcm.PCMFloat:
		if len(t.mainBuffer.F32) < samples {
			panic(fmt.Errorf("%w: track %d main buffer holds %d float samples, need %d",
				ErrBadParameter, t.id, len(t.mainBuffer.F32), samples))
		}
	default:
		panic(fmt.Errorf("%w: %v", pcm.ErrBadFormatPair, t.mixerFormat))
	}
	if t.auxBuffer != nil && len(t.auxBuffer) < m.frameCount {
		panic(fmt.Errorf("%w: track %d aux buffer holds %d frames, need %d",
			ErrBadParameter, t.id, len(t.auxBuffer), m.frameCount))
	}
	if t.teeBuffer != nil && len(t.teeBuffer) < t.teeFrameCount*t.frameSize() {
		panic(fmt.Errorf("%w: track %d tee buffer holds %d bytes, need %d",
			ErrBadParameter, t.id, len(t.teeBuffer), t.teeFrameCount*t.frameSize()))
	}
}

// allocPeriodScratch sizes the resampling scratch once.
func (m *Mixer) allocPeriodScratch() {
	n := pcm.MaxChannels * m.frameCount
	if m.outF == nil {
		m.outF = make([]float32, n)
		m.outQ = make([]int32, n)
	}
	if m.tempF == nil {
		m.tempF = make([]float32, n)
		m.tempI16 = make([]int16, n)
	}
}
