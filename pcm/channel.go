// SPDX-License-Identifier: EPL-2.0

package pcm

import "math/bits"

// MaxChannels is the largest channel count a track or mixer layout may carry.
const MaxChannels = 8

// ChannelMask describes a channel layout. The top two bits hold the
// representation: positional masks name speaker positions, index masks only
// count channels.
type ChannelMask uint32

const (
	representationShift = 30
	representationMask  = ChannelMask(3) << representationShift

	representationPosition = 0
	representationIndex    = 2
)

// Speaker positions.
const (
	FrontLeft          ChannelMask = 0x1
	FrontRight         ChannelMask = 0x2
	FrontCenter        ChannelMask = 0x4
	LowFrequency       ChannelMask = 0x8
	BackLeft           ChannelMask = 0x10
	BackRight          ChannelMask = 0x20
	FrontLeftOfCenter  ChannelMask = 0x40
	FrontRightOfCenter ChannelMask = 0x80
	BackCenter         ChannelMask = 0x100
	SideLeft           ChannelMask = 0x200
	SideRight          ChannelMask = 0x400
	TopCenter          ChannelMask = 0x800
	TopFrontLeft       ChannelMask = 0x1000
	TopFrontCenter     ChannelMask = 0x2000
	TopFrontRight      ChannelMask = 0x4000
	TopBackLeft        ChannelMask = 0x8000
	TopBackCenter      ChannelMask = 0x10000
	TopBackRight       ChannelMask = 0x20000
)

// Common layouts.
const (
	ChannelMono     = FrontLeft
	ChannelStereo   = FrontLeft | FrontRight
	ChannelQuad     = FrontLeft | FrontRight | BackLeft | BackRight
	Channel5Point1  = FrontLeft | FrontRight | FrontCenter | LowFrequency | BackLeft | BackRight
	Channel7Point1  = Channel5Point1 | SideLeft | SideRight
	ChannelNone     = ChannelMask(0)
	leftPositions   = FrontLeft | BackLeft | FrontLeftOfCenter | SideLeft | TopFrontLeft | TopBackLeft
	rightPositions  = FrontRight | BackRight | FrontRightOfCenter | SideRight | TopFrontRight | TopBackRight
	positionBitMask = ^representationMask
)

// IndexMask returns an index-representation mask carrying n channels.
func IndexMask(n int) ChannelMask {
	if n <= 0 {
		return ChannelNone
	}
	return ChannelMask(representationIndex)<<representationShift | ChannelMask(1<<n-1)
}

// StereoOrMultichannel returns the positional layout usually used for n
// output channels, falling back to an index mask for unusual counts.
func StereoOrMultichannel(n int) ChannelMask {
	switch n {
	case 1:
		return ChannelMono
	case 2:
		return ChannelStereo
	case 4:
		return ChannelQuad
	case 6:
		return Channel5Point1
	case 8:
		return Channel7Point1
	default:
		return IndexMask(n)
	}
}

// Count returns the number of channels in the mask.
func (m ChannelMask) Count() int {
	return bits.OnesCount32(uint32(m & positionBitMask))
}

// IsPosition reports whether the mask uses the positional representation.
func (m ChannelMask) IsPosition() bool {
	return uint32(m&representationMask)>>representationShift == representationPosition
}

// IsValid reports whether the mask carries between one and MaxChannels
// channels in a known representation.
func (m ChannelMask) IsValid() bool {
	repr := uint32(m&representationMask) >> representationShift
	if repr != representationPosition && repr != representationIndex {
		return false
	}
	n := m.Count()
	return n > 0 && n <= MaxChannels
}

// Side classifies each channel of the mask, in interleave order, as left
// (0), right (1) or center (2). Index masks alternate left and right.
func (m ChannelMask) Side() [MaxChannels]uint8 {
	var sides [MaxChannels]uint8
	if !m.IsPosition() {
		for c := range MaxChannels {
			sides[c] = uint8(c & 1)
		}
		return sides
	}
	c := 0
	for rest := uint32(m & positionBitMask); rest != 0 && c < MaxChannels; rest &= rest - 1 {
		pos := ChannelMask(rest & -rest)
		switch {
		case pos&leftPositions != 0:
			sides[c] = 0
		case pos&rightPositions != 0:
			sides[c] = 1
		default:
			sides[c] = 2
		}
		c++
	}
	return sides
}

// positions returns the individual position bits in interleave order.
func (m ChannelMask) positions() []ChannelMask {
	out := make([]ChannelMask, 0, m.Count())
	for rest := uint32(m & positionBitMask); rest != 0; rest &= rest - 1 {
		out = append(out, ChannelMask(rest&-rest))
	}
	return out
}
