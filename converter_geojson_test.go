package rescuepath

import (
	"math/rand"
	"strings"
	"testing"
)

func TestPrepareGeoJSON(t *testing.T) {
	line := []GeoPoint{{Lat: 49.98, Lon: 36.25}, {Lat: 49.99, Lon: 36.26}}
	str := PrepareGeoJSONLinestring(line)
	if !strings.Contains(str, "LineString") {
		t.Errorf("LineString geometry expected, got '%s'", str)
	}
	str = PrepareGeoJSONPoint(line[0])
	if !strings.Contains(str, "Point") {
		t.Errorf("Point geometry expected, got '%s'", str)
	}
}

func TestPrepareWKT(t *testing.T) {
	line := []GeoPoint{{Lat: 49.98, Lon: 36.25}, {Lat: 49.99, Lon: 36.26}}
	if !strings.HasPrefix(PrepareWKTLinestring(line), "LINESTRING") {
		t.Errorf("WKT LINESTRING expected")
	}
	if !strings.HasPrefix(PrepareWKTPoint(line[0]), "POINT") {
		t.Errorf("WKT POINT expected")
	}
}

func TestScenarioFeatureCollection(t *testing.T) {
	net := buildSquareNetwork(t)
	engine := buildEngine(t, net)

	target := EdgeID{Source: 1, Target: 2}
	center, err := net.EdgeMidpoint(target)
	if err != nil {
		t.Fatalf("Midpoint failed: %v", err)
	}
	sim := NewDamageSimulator(net, rand.New(rand.NewSource(1)),
		WithImpactCountRange(1, 1),
		WithEdgesPerImpactRange(1, 1),
		WithScatterRadius(0),
		WithDamageRadius(0.004),
		WithMajorRadius(1.0),
	)
	blocked := NewBlockedEdgeSet()
	report := sim.Simulate(center, blocked)

	stations := DefaultStations(KharkivCenter)
	emergency := nodePoint(t, net, 3)
	routes := engine.FindRoutes(nodePoint(t, net, 4), emergency, blocked)

	fc := ScenarioFeatureCollection(engine, net, stations, emergency, report, routes)
	// 6 stations + 1 emergency + 1 blocked segment + 1 impact + routes
	correct := 6 + 1 + 1 + 1 + len(routes)
	if len(fc.Features) != correct {
		t.Errorf("Scenario must contain %d features, got %d", correct, len(fc.Features))
	}
	if _, err := fc.MarshalJSON(); err != nil {
		t.Errorf("Scenario must marshal to JSON: %v", err)
	}
}
