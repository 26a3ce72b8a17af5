package rescuepath

// EdgeID identifies directed edge by its endpoints and parallel key.
// Parallel key disambiguates multiple physical segments connecting the same node pair.
type EdgeID struct {
	Source NodeID
	Target NodeID
	Key    int
}

// Reversed returns identifier of the opposite direction with the same parallel key.
// Existence of such edge in the network is not guaranteed (one-way streets).
func (eid EdgeID) Reversed() EdgeID {
	return EdgeID{Source: eid.Target, Target: eid.Source, Key: eid.Key}
}

// Edge is a directed drivable segment between two nodes.
// Two-way streets are represented as two independent directed edges.
type Edge struct {
	ID           EdgeID
	LengthMeters float64
	Class        RoadClass
	IsLink       bool
	// Geom keeps intermediate points of the segment. Empty geometry means
	// straight segment between endpoint node positions.
	Geom []GeoPoint
}
