package rescuepath

type NodeID int64

// Node is a point in the road network: intersection or dead end
type Node struct {
	ID  NodeID
	Lat float64
	Lon float64
}

// Point returns geographic position of the node
func (n Node) Point() GeoPoint {
	return GeoPoint{Lat: n.Lat, Lon: n.Lon}
}
