package rescuepath

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

type loaderConfig struct {
	verbose    bool
	processors int
}

// LoaderOption customizes OSM import process
type LoaderOption func(*loaderConfig)

// WithVerbose enables progress output during import
func WithVerbose(verbose bool) LoaderOption {
	return func(cfg *loaderConfig) {
		cfg.verbose = verbose
	}
}

// WithProcessors sets number of parallel PBF decoders
func WithProcessors(processors int) LoaderOption {
	return func(cfg *loaderConfig) {
		cfg.processors = processors
	}
}

type rawWay struct {
	id     osm.WayID
	oneway bool
	class  RoadClass
	isLink bool
	nodes  []osm.NodeID
}

type rawNode struct {
	lat      float64
	lon      float64
	useCount int
}

// LoadFromOSMFile imports road network from file of PBF-format (in OSM terms).
// Ways are filtered by `highway` tag to drivable classes; every way is split
// into directed edges at crossings. Two-way streets produce two independent
// directed edges. Returns error wrapping ErrDataUnavailable if file can not be read.
func LoadFromOSMFile(fileName string, options ...LoaderOption) (*RoadNetwork, error) {
	cfg := loaderConfig{
		verbose:    false,
		processors: 4,
	}
	for _, option := range options {
		option(&cfg)
	}

	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(ErrDataUnavailable, "Can't open file '%s': %s", fileName, err)
	}
	defer f.Close()

	scannerWays := osmpbf.New(context.Background(), f, cfg.processors)
	defer scannerWays.Close()

	ways := []rawWay{}
	nodesSeen := make(map[osm.NodeID]struct{})

	if cfg.verbose {
		fmt.Printf("Scanning ways...")
	}
	st := time.Now()
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tagMap := way.TagMap()
		highway, ok := tagMap["highway"]
		if !ok {
			continue
		}
		composition, ok := getRoadComposition(highway)
		if !ok {
			continue
		}
		if len(way.Nodes) < 2 {
			continue
		}
		oneway := false
		if v, ok := tagMap["oneway"]; ok {
			if v == "yes" || v == "1" {
				oneway = true
			}
		}
		if v, ok := tagMap["junction"]; ok && v == "roundabout" {
			oneway = true
		}
		preparedWay := rawWay{
			id:     way.ID,
			oneway: oneway,
			class:  composition.class,
			isLink: composition.isLink,
			nodes:  make([]osm.NodeID, len(way.Nodes)),
		}
		for i, wayNode := range way.Nodes {
			preparedWay.nodes[i] = wayNode.ID
			nodesSeen[wayNode.ID] = struct{}{}
		}
		ways = append(ways, preparedWay)
	}
	if scannerWays.Err() != nil {
		return nil, errors.Wrapf(ErrDataUnavailable, "Scanner error on ways: %s", scannerWays.Err())
	}
	if cfg.verbose {
		fmt.Printf("Done in %v\n\tWays: %d\n", time.Since(st), len(ways))
	}

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrapf(ErrDataUnavailable, "Can't repeat seeking: %s", err)
	}
	scannerNodes := osmpbf.New(context.Background(), f, cfg.processors)
	defer scannerNodes.Close()

	nodes := make(map[osm.NodeID]*rawNode)
	if cfg.verbose {
		fmt.Printf("Scanning nodes...")
	}
	st = time.Now()
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; ok {
			delete(nodesSeen, node.ID)
			nodes[node.ID] = &rawNode{
				lat: node.Lat,
				lon: node.Lon,
			}
		}
	}
	if scannerNodes.Err() != nil {
		return nil, errors.Wrapf(ErrDataUnavailable, "Scanner error on nodes: %s", scannerNodes.Err())
	}
	if cfg.verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(nodes))
	}

	if cfg.verbose {
		fmt.Printf("Counting node use cases...")
	}
	st = time.Now()
	for _, way := range ways {
		for i, wayNodeID := range way.nodes {
			node, ok := nodes[wayNodeID]
			if !ok {
				return nil, errors.Wrapf(ErrDataUnavailable, "Missing node with ID: %d", wayNodeID)
			}
			if i == 0 || i == len(way.nodes)-1 {
				node.useCount += 2
			} else {
				node.useCount++
			}
		}
	}
	if cfg.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	if cfg.verbose {
		fmt.Printf("Preparing edges...")
	}
	st = time.Now()
	edges := []Edge{}
	parallelKeys := make(map[[2]NodeID]int)
	nextKey := func(source, target NodeID) int {
		pair := [2]NodeID{source, target}
		key := parallelKeys[pair]
		parallelKeys[pair] = key + 1
		return key
	}
	appendEdge := func(source, target NodeID, way rawWay, geometry []GeoPoint) {
		edges = append(edges, Edge{
			ID: EdgeID{
				Source: source,
				Target: target,
				Key:    nextKey(source, target),
			},
			LengthMeters: getSphericalLength(geometry) * 1000.0,
			Class:        way.class,
			IsLink:       way.isLink,
			Geom:         geometry,
		})
	}
	for _, way := range ways {
		var source osm.NodeID
		geometry := []GeoPoint{}
		for i, wayNodeID := range way.nodes {
			node := nodes[wayNodeID]
			pt := GeoPoint{Lat: node.lat, Lon: node.lon}
			if i == 0 {
				source = wayNodeID
				geometry = append(geometry, pt)
				continue
			}
			geometry = append(geometry, pt)
			if node.useCount > 1 || i == len(way.nodes)-1 {
				appendEdge(NodeID(source), NodeID(wayNodeID), way, geometry)
				if !way.oneway {
					appendEdge(NodeID(wayNodeID), NodeID(source), way, reverseLine(geometry))
				}
				source = wayNodeID
				geometry = []GeoPoint{pt}
			}
		}
	}
	if cfg.verbose {
		fmt.Printf("Done in %v\n\tEdges: %d\n", time.Since(st), len(edges))
	}

	if cfg.verbose {
		fmt.Printf("Preparing nodes...")
	}
	st = time.Now()
	nodesFiltered := []Node{}
	for nodeID, node := range nodes {
		if node.useCount > 1 {
			nodesFiltered = append(nodesFiltered, Node{
				ID:  NodeID(nodeID),
				Lat: node.lat,
				Lon: node.lon,
			})
		}
	}
	if cfg.verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(nodesFiltered))
	}

	net, err := NewRoadNetwork(nodesFiltered, edges)
	if err != nil {
		return nil, errors.Wrap(err, "Can't assemble road network")
	}
	if net.NodesNum() == 0 {
		return nil, errors.Wrapf(ErrEmptyNetwork, "No drivable roads found in '%s'", fileName)
	}
	return net, nil
}
