// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"slices"
)

// handle addresses a track slot. A handle outlives its track only as a
// stale value: the slot generation moves on when the track is removed.
type handle struct {
	slot uint32
	gen  uint32
}

type slot struct {
	gen   uint32
	track *track
}

// registry owns every track. Everything else refers to tracks by handle.
type registry struct {
	slots []slot
	free  []uint32
	ids   map[int]handle
	order []int // live ids, ascending
}

func newRegistry() registry {
	return registry{ids: make(map[int]handle)}
}

func (r *registry) exists(id int) bool {
	_, ok := r.ids[id]
	return ok
}

func (r *registry) insert(t *track) handle {
	var h handle
	if n := len(r.free); n > 0 {
		h.slot = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		h.slot = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}
	s := &r.slots[h.slot]
	s.track = t
	h.gen = s.gen

	r.ids[t.id] = h
	i, _ := slices.BinarySearch(r.order, t.id)
	r.order = slices.Insert(r.order, i, t.id)
	return h
}

func (r *registry) remove(id int) {
	h, ok := r.ids[id]
	if !ok {
		return
	}
	s := &r.slots[h.slot]
	s.track = nil
	s.gen++
	r.free = append(r.free, h.slot)

	delete(r.ids, id)
	if i, found := slices.BinarySearch(r.order, id); found {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// lookup returns the live track for id.
func (r *registry) lookup(id int) (*track, handle, bool) {
	h, ok := r.ids[id]
	if !ok {
		return nil, handle{}, false
	}
	return r.slots[h.slot].track, h, true
}

// mustLookup is lookup for public entry points, where an unknown id is a
// caller bug.
func (r *registry) mustLookup(id int) *track {
	t, _, ok := r.lookup(id)
	if !ok {
		panic(fmt.Errorf("%w: %d", ErrUnknownTrack, id))
	}
	return t
}

// get resolves a handle held by the strategy lists.
func (r *registry) get(h handle) *track {
	s := &r.slots[h.slot]
	if s.gen != h.gen || s.track == nil {
		panic(fmt.Errorf("%w: stale handle %d/%d", ErrUnknownTrack, h.slot, h.gen))
	}
	return s.track
}
