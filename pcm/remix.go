// SPDX-License-Identifier: EPL-2.0

package pcm

// Remixer maps interleaved frames from one channel layout onto another
// through a fixed gain matrix computed at construction.
type Remixer struct {
	in, out  int
	identity bool
	matrix   [MaxChannels][MaxChannels]float32 // [out][in]
}

// NewRemixer builds the matrix for in -> out. Matching speaker positions
// copy straight across. Unmatched left channels fold into the first output
// channel, right channels into the second, and center channels split
// between both. A mono output averages every input channel, and index
// masks copy as many channels as both sides carry.
func NewRemixer(in, out ChannelMask) *Remixer {
	r := &Remixer{in: in.Count(), out: out.Count()}
	if in == out {
		r.identity = true
		for c := range r.in {
			r.matrix[c][c] = 1
		}
		return r
	}

	switch {
	case r.out == 1:
		inv := 1 / float32(r.in)
		for c := range r.in {
			r.matrix[0][c] = inv
		}
	case !in.IsPosition() || !out.IsPosition():
		for c := range min(r.in, r.out) {
			r.matrix[c][c] = 1
		}
	case r.in == 1:
		// mono source feeds both front channels
		for c, pos := range out.positions() {
			if pos == FrontLeft || pos == FrontRight {
				r.matrix[c][0] = 1
			}
		}
	default:
		r.foldPositions(in, out)
	}
	return r
}

func (r *Remixer) foldPositions(in, out ChannelMask) {
	outPos := out.positions()
	index := func(p ChannelMask) int {
		for i, q := range outPos {
			if q == p {
				return i
			}
		}
		return -1
	}
	left, right := index(FrontLeft), index(FrontRight)
	sides := in.Side()
	for c, pos := range in.positions() {
		if o := index(pos); o >= 0 {
			r.matrix[o][c] = 1
			continue
		}
		switch sides[c] {
		case 0:
			if left >= 0 {
				r.matrix[left][c] = 1
			}
		case 1:
			if right >= 0 {
				r.matrix[right][c] = 1
			}
		default:
			if left >= 0 {
				r.matrix[left][c] = 0.5
			}
			if right >= 0 {
				r.matrix[right][c] = 0.5
			}
		}
	}
}

// InChannels returns the source channel count.
func (r *Remixer) InChannels() int { return r.in }

// OutChannels returns the destination channel count.
func (r *Remixer) OutChannels() int { return r.out }

// Identity reports whether the remix is a plain copy.
func (r *Remixer) Identity() bool { return r.identity }

// Float32 remixes frames of src into dst.
func (r *Remixer) Float32(dst, src []float32, frames int) {
	if r.identity {
		copy(dst[:frames*r.out], src[:frames*r.in])
		return
	}
	for f := range frames {
		si := src[f*r.in : f*r.in+r.in]
		di := dst[f*r.out : f*r.out+r.out]
		for o := range di {
			row := &r.matrix[o]
			var acc float32
			for i, s := range si {
				acc += row[i] * s
			}
			di[o] = acc
		}
	}
}

// Int16 remixes frames of src into dst, saturating folded sums.
func (r *Remixer) Int16(dst, src []int16, frames int) {
	if r.identity {
		copy(dst[:frames*r.out], src[:frames*r.in])
		return
	}
	for f := range frames {
		si := src[f*r.in : f*r.in+r.in]
		di := dst[f*r.out : f*r.out+r.out]
		for o := range di {
			row := &r.matrix[o]
			var acc float32
			for i, s := range si {
				acc += row[i] * float32(s)
			}
			switch {
			case acc > 32767:
				di[o] = 32767
			case acc < -32768:
				di[o] = -32768
			default:
				di[o] = int16(acc)
			}
		}
	}
}
