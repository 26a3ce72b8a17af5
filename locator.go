package rescuepath

import (
	"sort"
)

type locatorEntry struct {
	id NodeID
	x  float64
	y  float64
}

// SpatialLocator resolves geographic coordinates to the nearest network node.
// It is built once from RoadNetwork over projected (EPSG:3857) coordinates
// and is safe for concurrent use.
type SpatialLocator struct {
	entries []locatorEntry
}

// NewSpatialLocator builds locator from all nodes of given network.
// Returns error wrapping ErrEmptyNetwork if network has no nodes.
func NewSpatialLocator(net *RoadNetwork) (*SpatialLocator, error) {
	if net.NodesNum() == 0 {
		return nil, ErrEmptyNetwork
	}
	entries := make([]locatorEntry, 0, net.NodesNum())
	for _, node := range net.Nodes() {
		x, y := epsg4326To3857(node.Lon, node.Lat)
		entries = append(entries, locatorEntry{id: node.ID, x: x, y: y})
	}
	// Ascending identifiers guarantee that strict comparison below breaks
	// distance ties in favor of the smallest node ID
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id < entries[j].id
	})
	return &SpatialLocator{entries: entries}, nil
}

// NearestNode returns identifier of the node closest to given coordinates.
// Ties are broken by the smallest node identifier.
func (locator *SpatialLocator) NearestNode(lat, lon float64) NodeID {
	qx, qy := epsg4326To3857(lon, lat)
	best := locator.entries[0]
	bestDist := squaredDist(best.x, best.y, qx, qy)
	for _, entry := range locator.entries[1:] {
		dist := squaredDist(entry.x, entry.y, qx, qy)
		if dist < bestDist {
			best = entry
			bestDist = dist
		}
	}
	return best.id
}

func squaredDist(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}
