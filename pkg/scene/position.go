// Package scene holds the live rendering state of the compliance graph view:
// node positions, the camera, the per-frame animation laws, and the pointer
// interaction state machine. Everything here runs on the UI event loop; the
// single-writer rule (only the interaction controller mutates positions and
// selection) is what keeps per-frame reads consistent without locks.
package scene

import "gonum.org/v1/gonum/spatial/r3"

// PositionStore maps node ids to their current world position. It is seeded
// from the layout engine whenever a new graph arrives and mutated only by
// drag operations afterwards. Reads and writes interleave on the UI loop,
// so no locking: last write wins within a frame, and event handling always
// completes before the next frame renders.
type PositionStore struct {
	pos map[string]r3.Vec
}

// NewPositionStore seeds a store from initial layout positions. The seed map
// is copied; later layout reuse cannot alias into the store.
func NewPositionStore(seed map[string]r3.Vec) *PositionStore {
	pos := make(map[string]r3.Vec, len(seed))
	for id, v := range seed {
		pos[id] = v
	}
	return &PositionStore{pos: pos}
}

// Get returns the current position for a node id.
func (s *PositionStore) Get(id string) (r3.Vec, bool) {
	v, ok := s.pos[id]
	return v, ok
}

// Set overwrites a node's position. Only the interaction controller calls
// this during drags.
func (s *PositionStore) Set(id string, v r3.Vec) {
	s.pos[id] = v
}

// Len returns the number of tracked nodes.
func (s *PositionStore) Len() int {
	return len(s.pos)
}

// Each calls fn for every tracked node. Iteration order is unspecified;
// callers that need draw order sort by depth themselves.
func (s *PositionStore) Each(fn func(id string, v r3.Vec)) {
	for id, v := range s.pos {
		fn(id, v)
	}
}

func vecFromArray(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}
