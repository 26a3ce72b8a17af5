package rescuepath

import (
	"math"
	"reflect"
	"testing"
)

// buildCorridorNetwork returns 12-node chain 1-2-...-12 (100 meters per
// side, both directions) with optional bypass 5-101-102-9 (200 meters per
// side) that avoids the middle of the chain
func buildCorridorNetwork(t *testing.T, withBypass bool) *RoadNetwork {
	t.Helper()
	nodes := []Node{}
	for i := 1; i <= 12; i++ {
		nodes = append(nodes, Node{
			ID:  NodeID(i),
			Lat: 50.0,
			Lon: 36.0 + float64(i-1)*0.002,
		})
	}
	edges := []Edge{}
	appendTwoWay := func(u, v NodeID, length float64) {
		edges = append(edges,
			Edge{ID: EdgeID{Source: u, Target: v}, LengthMeters: length, Class: CLASS_RESIDENTIAL},
			Edge{ID: EdgeID{Source: v, Target: u}, LengthMeters: length, Class: CLASS_RESIDENTIAL},
		)
	}
	for i := 1; i < 12; i++ {
		appendTwoWay(NodeID(i), NodeID(i+1), 100)
	}
	if withBypass {
		nodes = append(nodes,
			Node{ID: 101, Lat: 50.002, Lon: 36.008},
			Node{ID: 102, Lat: 50.002, Lon: 36.016},
		)
		appendTwoWay(5, 101, 200)
		appendTwoWay(101, 102, 200)
		appendTwoWay(102, 9, 200)
	}
	net, err := NewRoadNetwork(nodes, edges)
	if err != nil {
		t.Fatalf("Can't build corridor network: %v", err)
	}
	return net
}

func buildEngine(t *testing.T, net *RoadNetwork) *RouteEngine {
	t.Helper()
	engine, err := NewRouteEngine(net)
	if err != nil {
		t.Fatalf("Can't build route engine: %v", err)
	}
	return engine
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFindRoutesSquareDeterministic(t *testing.T) {
	net := buildSquareNetwork(t)
	engine := buildEngine(t, net)

	routes := engine.FindRoutes(nodePoint(t, net, 1), nodePoint(t, net, 3), NewBlockedEdgeSet())
	if len(routes) != 1 {
		t.Fatalf("Short path must produce exactly one route, got %d", len(routes))
	}
	route := routes[0]
	if route.Kind != ROUTE_FASTEST {
		t.Errorf("Single route must be fastest, got %v", route.Kind)
	}
	if !pathsEqual(route.Path, []NodeID{1, 2, 3}) {
		t.Errorf("Tie-break must settle path [1 2 3], got %v", route.Path)
	}
	if !almostEqual(route.DistanceKm, 2.0) {
		t.Errorf("Distance must be 2.0 km, got %f", route.DistanceKm)
	}
	// 2 km of secondary roads at 60 km/h take 2 minutes
	if !almostEqual(route.TimeMinutes, 2.0) {
		t.Errorf("Time must be 2.0 min, got %f", route.TimeMinutes)
	}
	if route.Color != "#00c853" {
		t.Errorf("Fastest route color must be #00c853, got %s", route.Color)
	}
}

func TestFindRoutesDetourAroundBlocked(t *testing.T) {
	net := buildSquareNetwork(t)
	engine := buildEngine(t, net)

	blocked := NewBlockedEdgeSet()
	blocked.Block(EdgeID{Source: 1, Target: 2})
	blocked.Block(EdgeID{Source: 2, Target: 1})

	routes := engine.FindRoutes(nodePoint(t, net, 1), nodePoint(t, net, 3), blocked)
	if len(routes) != 1 {
		t.Fatalf("Expected exactly one route, got %d", len(routes))
	}
	if !pathsEqual(routes[0].Path, []NodeID{1, 4, 3}) {
		t.Errorf("Route must detour as [1 4 3], got %v", routes[0].Path)
	}
	if !almostEqual(routes[0].DistanceKm, 2.0) {
		t.Errorf("Detour distance must be 2.0 km, got %f", routes[0].DistanceKm)
	}
}

func TestFindRoutesSeveredNetwork(t *testing.T) {
	net := buildSquareNetwork(t)
	engine := buildEngine(t, net)

	blocked := NewBlockedEdgeSet()
	for _, id := range []EdgeID{
		{Source: 2, Target: 3}, {Source: 3, Target: 2},
		{Source: 4, Target: 3}, {Source: 3, Target: 4},
	} {
		blocked.Block(id)
	}

	routes := engine.FindRoutes(nodePoint(t, net, 1), nodePoint(t, net, 3), blocked)
	if len(routes) != 0 {
		t.Errorf("Severed target must produce empty result, got %d routes", len(routes))
	}
}

func TestFindRoutesSameNode(t *testing.T) {
	net := buildSquareNetwork(t)
	engine := buildEngine(t, net)

	routes := engine.FindRoutes(nodePoint(t, net, 1), nodePoint(t, net, 1), NewBlockedEdgeSet())
	if len(routes) != 1 {
		t.Fatalf("Expected exactly one route, got %d", len(routes))
	}
	route := routes[0]
	if !pathsEqual(route.Path, []NodeID{1}) {
		t.Errorf("Path must be single-node sequence, got %v", route.Path)
	}
	if route.DistanceKm != 0 || route.TimeMinutes != 0 {
		t.Errorf("Metrics of degenerate route must be zero, got %f km, %f min", route.DistanceKm, route.TimeMinutes)
	}
}

func TestFindRoutesAlternative(t *testing.T) {
	net := buildCorridorNetwork(t, true)
	engine := buildEngine(t, net)

	routes := engine.FindRoutes(nodePoint(t, net, 1), nodePoint(t, net, 12), NewBlockedEdgeSet())
	if len(routes) != 2 {
		t.Fatalf("Corridor with bypass must produce two routes, got %d", len(routes))
	}
	fastest, alternative := routes[0], routes[1]
	if fastest.Kind != ROUTE_FASTEST || alternative.Kind != ROUTE_ALTERNATIVE {
		t.Fatalf("Routes must be ordered fastest first, got %v then %v", fastest.Kind, alternative.Kind)
	}
	if len(fastest.Path) != 12 {
		t.Errorf("Fastest path must follow the 12-node chain, got %v", fastest.Path)
	}
	if !almostEqual(fastest.DistanceKm, 1.1) {
		t.Errorf("Fastest distance must be 1.1 km, got %f", fastest.DistanceKm)
	}
	bypassed := false
	for _, node := range alternative.Path {
		if node == 101 {
			bypassed = true
		}
	}
	if !bypassed {
		t.Errorf("Alternative must use the bypass, got %v", alternative.Path)
	}
	if !almostEqual(alternative.DistanceKm, 1.3) {
		t.Errorf("Alternative distance must be 1.3 km, got %f", alternative.DistanceKm)
	}
	if alternative.Color != "#ffa726" {
		t.Errorf("Alternative route color must be #ffa726, got %s", alternative.Color)
	}
}

func TestFindRoutesNoAlternativeWithoutBypass(t *testing.T) {
	net := buildCorridorNetwork(t, false)
	engine := buildEngine(t, net)

	routes := engine.FindRoutes(nodePoint(t, net, 1), nodePoint(t, net, 12), NewBlockedEdgeSet())
	if len(routes) != 1 {
		t.Fatalf("Chain without bypass must produce single route, got %d", len(routes))
	}
}

func TestFindRoutesIdempotent(t *testing.T) {
	net := buildCorridorNetwork(t, true)
	engine := buildEngine(t, net)

	blocked := NewBlockedEdgeSet()
	blocked.Block(EdgeID{Source: 6, Target: 7})
	blocked.Block(EdgeID{Source: 7, Target: 6})

	first := engine.FindRoutes(nodePoint(t, net, 1), nodePoint(t, net, 12), blocked)
	second := engine.FindRoutes(nodePoint(t, net, 1), nodePoint(t, net, 12), blocked)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Identical inputs must produce identical routes: %v vs %v", first, second)
	}
}

func TestFindRoutesNeverTraverseBlocked(t *testing.T) {
	net := buildCorridorNetwork(t, true)
	engine := buildEngine(t, net)

	blocked := NewBlockedEdgeSet()
	blocked.Block(EdgeID{Source: 6, Target: 7})
	blocked.Block(EdgeID{Source: 7, Target: 6})

	routes := engine.FindRoutes(nodePoint(t, net, 1), nodePoint(t, net, 12), blocked)
	if len(routes) == 0 {
		t.Fatalf("Bypass keeps the target reachable")
	}
	for _, route := range routes {
		for i := 0; i+1 < len(route.Path); i++ {
			id := EdgeID{Source: route.Path[i], Target: route.Path[i+1]}
			if blocked.IsBlocked(id) {
				t.Errorf("Route %v traverses blocked edge %v", route.Kind, id)
			}
		}
	}
}

func TestPathGeometryStraightSegments(t *testing.T) {
	net := buildSquareNetwork(t)
	engine := buildEngine(t, net)

	coords := engine.PathGeometry([]NodeID{1, 2, 3})
	correct := []GeoPoint{
		nodePoint(t, net, 1),
		nodePoint(t, net, 2),
		nodePoint(t, net, 3),
	}
	if len(coords) != len(correct) {
		t.Fatalf("Geometry must have %d points, got %d", len(correct), len(coords))
	}
	for i := range correct {
		if coords[i] != correct[i] {
			t.Errorf("Geometry point %d must be %v, got %v", i, correct[i], coords[i])
		}
	}
}
