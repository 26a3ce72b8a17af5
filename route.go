package rescuepath

// RouteKind classifies computed route
type RouteKind uint16

const (
	ROUTE_FASTEST = RouteKind(iota + 1)
	ROUTE_ALTERNATIVE
)

func (iotaIdx RouteKind) String() string {
	return [...]string{"fastest", "alternative"}[iotaIdx-1]
}

var (
	routeNameByKind = map[RouteKind]string{
		ROUTE_FASTEST:     "Fastest Route",
		ROUTE_ALTERNATIVE: "Alternative Route",
	}
	routeColorByKind = map[RouteKind]string{
		ROUTE_FASTEST:     "#00c853",
		ROUTE_ALTERNATIVE: "#ffa726",
	}
)

// An alternative route is attempted only when the fastest path has more
// nodes than this
const alternativeMinPathNodes = 10

// Route is an ordered node sequence with derived travel metrics.
// Routes are recomputed from scratch on every query and never mutated in place.
type Route struct {
	Name        string
	Kind        RouteKind
	Path        []NodeID
	DistanceKm  float64
	TimeMinutes float64
	Color       string
}

// RouteEngine computes travel routes between two geographic points honoring
// the current blocked-edge overlay. The engine holds no state across calls
// except the immutable RoadNetwork and its locator, so it is safe for
// concurrent use.
type RouteEngine struct {
	net     *RoadNetwork
	locator *SpatialLocator
}

// NewRouteEngine builds engine over given network.
// Returns error wrapping ErrEmptyNetwork if network has no nodes.
func NewRouteEngine(net *RoadNetwork) (*RouteEngine, error) {
	locator, err := NewSpatialLocator(net)
	if err != nil {
		return nil, err
	}
	return &RouteEngine{net: net, locator: locator}, nil
}

// FindRoutes returns fastest and, when structurally possible, alternative
// route between two coordinates. Empty result means total network severance
// between resolved endpoints; it is a valid outcome, not an error.
//
// The alternative is computed by cutting every edge along the middle third
// of the fastest path and re-running the search; it is reported only when it
// differs from the fastest path. Metrics of both routes are computed against
// the blocked-only view of the network.
func (engine *RouteEngine) FindRoutes(start, end GeoPoint, blocked *BlockedEdgeSet) []Route {
	startNode := engine.locator.NearestNode(start.Lat, start.Lon)
	endNode := engine.locator.NearestNode(end.Lat, end.Lon)

	var blockedFilter edgeFilter
	if blocked != nil && blocked.Len() > 0 {
		blockedFilter = func(id EdgeID) bool {
			return blocked.IsBlocked(id)
		}
	}
	cleanView := graphView{net: engine.net, filter: blockedFilter}

	path, found := shortestPath(cleanView, startNode, endNode)
	if !found {
		return []Route{}
	}

	routes := []Route{engine.buildRoute(ROUTE_FASTEST, path, cleanView)}
	if len(path) <= alternativeMinPathNodes {
		return routes
	}

	// Cut the middle third of the fastest path (every parallel edge of every
	// traversed node pair) and search again
	cutPairs := make(map[[2]NodeID]struct{})
	midStart := len(path) / 3
	midEnd := 2 * len(path) / 3
	for i := midStart; i < midEnd && i < len(path)-1; i++ {
		cutPairs[[2]NodeID{path[i], path[i+1]}] = struct{}{}
	}
	cutView := graphView{
		net: engine.net,
		filter: func(id EdgeID) bool {
			if blockedFilter != nil && blockedFilter(id) {
				return true
			}
			_, cut := cutPairs[[2]NodeID{id.Source, id.Target}]
			return cut
		},
	}

	altPath, found := shortestPath(cutView, startNode, endNode)
	if !found || pathsEqual(altPath, path) {
		return routes
	}
	routes = append(routes, engine.buildRoute(ROUTE_ALTERNATIVE, altPath, cleanView))
	return routes
}

func (engine *RouteEngine) buildRoute(kind RouteKind, path []NodeID, metricsView graphView) Route {
	distanceKm, timeMinutes := routeMetrics(metricsView, path)
	return Route{
		Name:        routeNameByKind[kind],
		Kind:        kind,
		Path:        path,
		DistanceKm:  distanceKm,
		TimeMinutes: timeMinutes,
		Color:       routeColorByKind[kind],
	}
}

// routeMetrics accumulates distance (km) and travel time (min) over
// consecutive node pairs of the path. When multiple parallel edges connect a
// pair, the minimum-length one is taken. Travel time follows the road class
// speed model.
func routeMetrics(view graphView, path []NodeID) (float64, float64) {
	distanceMeters := 0.0
	timeHours := 0.0
	for i := 0; i+1 < len(path); i++ {
		edge, ok := minLengthEdge(view, path[i], path[i+1])
		if !ok {
			continue
		}
		distanceMeters += edge.LengthMeters
		speed := travelSpeed(edge.Class, edge.IsLink)
		timeHours += (edge.LengthMeters / 1000.0) / speed
	}
	return distanceMeters / 1000.0, timeHours * 60.0
}

// minLengthEdge returns the shortest of parallel edges connecting the pair
// visible through the view
func minLengthEdge(view graphView, source, target NodeID) (*Edge, bool) {
	var best *Edge
	for _, edge := range view.outgoing(source) {
		if edge.ID.Target != target {
			continue
		}
		if best == nil || edge.LengthMeters < best.LengthMeters {
			best = edge
		}
	}
	return best, best != nil
}

// PathGeometry resolves node path to real-world coordinate sequence using
// detailed edge geometry when present and straight segments otherwise
func (engine *RouteEngine) PathGeometry(path []NodeID) []GeoPoint {
	coords := []GeoPoint{}
	for i := 0; i+1 < len(path); i++ {
		edge, ok := minLengthEdge(graphView{net: engine.net}, path[i], path[i+1])
		if !ok {
			continue
		}
		segment := engine.net.EdgeGeometry(edge.ID)
		for _, pt := range segment {
			if len(coords) > 0 && coords[len(coords)-1] == pt {
				continue
			}
			coords = append(coords, pt)
		}
	}
	return coords
}

func pathsEqual(a, b []NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
