package rescuepath

import (
	"sort"
)

// BlockedEdgeSet is a mutable overlay of directed edges currently impassable.
// It never touches RoadNetwork itself. Blocking is directional: blocking
// (u, v, key) does not implicitly block (v, u, key).
//
// The set is not safe for concurrent mutation. A deployment serving
// simultaneous route requests should treat each damage wave as a new
// snapshot (see Clone) handed to readers.
type BlockedEdgeSet struct {
	blocked map[EdgeID]struct{}
}

// NewBlockedEdgeSet returns empty set of blocked edges
func NewBlockedEdgeSet() *BlockedEdgeSet {
	return &BlockedEdgeSet{
		blocked: make(map[EdgeID]struct{}),
	}
}

// Block marks directed edge as impassable
func (set *BlockedEdgeSet) Block(id EdgeID) {
	set.blocked[id] = struct{}{}
}

// IsBlocked reports whether directed edge is impassable
func (set *BlockedEdgeSet) IsBlocked(id EdgeID) bool {
	_, ok := set.blocked[id]
	return ok
}

// Reset drops all blocked edges
func (set *BlockedEdgeSet) Reset() {
	set.blocked = make(map[EdgeID]struct{})
}

// Len returns number of blocked directed edges
func (set *BlockedEdgeSet) Len() int {
	return len(set.blocked)
}

// Edges returns blocked edge identifiers ordered by (source, target, key)
func (set *BlockedEdgeSet) Edges() []EdgeID {
	ids := make([]EdgeID, 0, len(set.blocked))
	for id := range set.blocked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return lessEdgeID(ids[i], ids[j])
	})
	return ids
}

// Clone returns independent copy of the set
func (set *BlockedEdgeSet) Clone() *BlockedEdgeSet {
	clone := &BlockedEdgeSet{
		blocked: make(map[EdgeID]struct{}, len(set.blocked)),
	}
	for id := range set.blocked {
		clone.blocked[id] = struct{}{}
	}
	return clone
}
