package rescuepath

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// RoadNetwork is an immutable directed multigraph of the drivable street network.
// It is loaded once per session and is safe for concurrent reads.
type RoadNetwork struct {
	nodes    map[NodeID]Node
	edges    map[EdgeID]*Edge
	adjacent map[NodeID][]*Edge
}

// NewRoadNetwork assembles network from given nodes and edges.
// Every edge endpoint must exist in the node set and edge length must be non-negative.
func NewRoadNetwork(nodes []Node, edges []Edge) (*RoadNetwork, error) {
	net := &RoadNetwork{
		nodes:    make(map[NodeID]Node, len(nodes)),
		edges:    make(map[EdgeID]*Edge, len(edges)),
		adjacent: make(map[NodeID][]*Edge),
	}
	for _, node := range nodes {
		net.nodes[node.ID] = node
	}
	for i := range edges {
		edge := edges[i]
		if _, ok := net.nodes[edge.ID.Source]; !ok {
			return nil, errors.Wrapf(ErrBrokenTopology, "No source node with ID '%d'", edge.ID.Source)
		}
		if _, ok := net.nodes[edge.ID.Target]; !ok {
			return nil, errors.Wrapf(ErrBrokenTopology, "No target node with ID '%d'", edge.ID.Target)
		}
		if edge.LengthMeters < 0 {
			return nil, errors.Wrapf(ErrBrokenTopology, "Negative length for edge '%v'", edge.ID)
		}
		if _, ok := net.edges[edge.ID]; ok {
			return nil, errors.Wrapf(ErrBrokenTopology, "Duplicate edge '%v'", edge.ID)
		}
		net.edges[edge.ID] = &edge
		net.adjacent[edge.ID.Source] = append(net.adjacent[edge.ID.Source], &edge)
	}
	// Fixed iteration order over outgoing edges keeps route search reproducible
	for _, outgoing := range net.adjacent {
		sort.Slice(outgoing, func(i, j int) bool {
			if outgoing[i].ID.Target != outgoing[j].ID.Target {
				return outgoing[i].ID.Target < outgoing[j].ID.Target
			}
			return outgoing[i].ID.Key < outgoing[j].ID.Key
		})
	}
	return net, nil
}

// NodesNum returns number of nodes in the network
func (net *RoadNetwork) NodesNum() int {
	return len(net.nodes)
}

// EdgesNum returns number of directed edges in the network
func (net *RoadNetwork) EdgesNum() int {
	return len(net.edges)
}

// Node returns node by its identifier
func (net *RoadNetwork) Node(id NodeID) (Node, bool) {
	node, ok := net.nodes[id]
	return node, ok
}

// Edge returns directed edge by its identifier
func (net *RoadNetwork) Edge(id EdgeID) (*Edge, bool) {
	edge, ok := net.edges[id]
	return edge, ok
}

// HasEdge reports whether directed edge with given identifier exists
func (net *RoadNetwork) HasEdge(id EdgeID) bool {
	_, ok := net.edges[id]
	return ok
}

// Outgoing returns outgoing edges of given node in fixed order.
// Returned slice must not be modified by the caller.
func (net *RoadNetwork) Outgoing(id NodeID) []*Edge {
	return net.adjacent[id]
}

// Nodes returns all nodes ordered by identifier
func (net *RoadNetwork) Nodes() []Node {
	nodes := make([]Node, 0, len(net.nodes))
	for _, node := range net.nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}

// Edges returns all directed edges ordered by identifier
func (net *RoadNetwork) Edges() []*Edge {
	edges := make([]*Edge, 0, len(net.edges))
	for _, edge := range net.edges {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		return lessEdgeID(edges[i].ID, edges[j].ID)
	})
	return edges
}

func lessEdgeID(a, b EdgeID) bool {
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	if a.Target != b.Target {
		return a.Target < b.Target
	}
	return a.Key < b.Key
}

// EdgeMidpoint returns middle point of the edge: arithmetic mean of endpoint
// positions in degree space (matches damage proximity model)
func (net *RoadNetwork) EdgeMidpoint(id EdgeID) (GeoPoint, error) {
	source, ok := net.nodes[id.Source]
	if !ok {
		return GeoPoint{}, errors.Wrapf(ErrBrokenTopology, "No source node with ID '%d'", id.Source)
	}
	target, ok := net.nodes[id.Target]
	if !ok {
		return GeoPoint{}, errors.Wrapf(ErrBrokenTopology, "No target node with ID '%d'", id.Target)
	}
	return GeoPoint{
		Lat: (source.Lat + target.Lat) / 2.0,
		Lon: (source.Lon + target.Lon) / 2.0,
	}, nil
}

// EdgeGeometry returns real-world coordinates of the edge: detailed geometry
// when present, straight segment between endpoint nodes otherwise
func (net *RoadNetwork) EdgeGeometry(id EdgeID) []GeoPoint {
	edge, ok := net.edges[id]
	if ok && len(edge.Geom) >= 2 {
		line := make([]GeoPoint, len(edge.Geom))
		copy(line, edge.Geom)
		return line
	}
	source, okSource := net.nodes[id.Source]
	target, okTarget := net.nodes[id.Target]
	if !okSource || !okTarget {
		return nil
	}
	return []GeoPoint{source.Point(), target.Point()}
}

// EdgesNear returns edges which midpoints lay within given radius around the point.
// Both radius and distance are Euclidean in degree space. Result is ordered by identifier.
func (net *RoadNetwork) EdgesNear(pt GeoPoint, radiusDeg float64) []*Edge {
	found := []*Edge{}
	for _, edge := range net.Edges() {
		mid, err := net.EdgeMidpoint(edge.ID)
		if err != nil {
			continue
		}
		if findDistance(mid, pt) <= radiusDeg {
			found = append(found, edge)
		}
	}
	return found
}

// MajorEdges returns edges of major road classes (motorway, trunk, primary,
// secondary and their ramps) which midpoints lay within given radius around
// the reference point. Result is ordered by identifier.
func (net *RoadNetwork) MajorEdges(center GeoPoint, maxDistDeg float64) []*Edge {
	found := []*Edge{}
	for _, edge := range net.Edges() {
		if !isMajorClass(edge.Class) {
			continue
		}
		mid, err := net.EdgeMidpoint(edge.ID)
		if err != nil {
			continue
		}
		if findDistance(mid, center) <= maxDistDeg {
			found = append(found, edge)
		}
	}
	return found
}

// ExportToCSV saves network to CSV files: {fname}_nodes.csv and {fname}_edges.csv
func (net *RoadNetwork) ExportToCSV(fname string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameNodes := fmt.Sprintf(fnameParts[0] + "_nodes.csv")
	fnameEdges := fmt.Sprintf(fnameParts[0] + "_edges.csv")

	err := net.exportNodesToCSV(fnameNodes)
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}

	err = net.exportEdgesToCSV(fnameEdges)
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}
	return nil
}

func (net *RoadNetwork) exportNodesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "longitude", "latitude", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, node := range net.Nodes() {
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.ID),
			fmt.Sprintf("%f", node.Lon),
			fmt.Sprintf("%f", node.Lat),
			wkt.MarshalString(orb.Point{node.Lon, node.Lat}),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	return nil
}

func (net *RoadNetwork) exportEdgesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"source_node", "target_node", "parallel_key", "road_class", "is_link", "length_meters", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, edge := range net.Edges() {
		err = writer.Write([]string{
			fmt.Sprintf("%d", edge.ID.Source),
			fmt.Sprintf("%d", edge.ID.Target),
			fmt.Sprintf("%d", edge.ID.Key),
			fmt.Sprintf("%s", edge.Class),
			fmt.Sprintf("%t", edge.IsLink),
			fmt.Sprintf("%f", edge.LengthMeters),
			wkt.MarshalString(lineToOrb(net.EdgeGeometry(edge.ID))),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	return nil
}

func lineToOrb(line []GeoPoint) orb.LineString {
	newLine := make(orb.LineString, len(line))
	for i, pt := range line {
		newLine[i] = orb.Point{pt.Lon, pt.Lat}
	}
	return newLine
}
