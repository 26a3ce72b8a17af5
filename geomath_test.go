package rescuepath

import (
	"math"
	"testing"
)

func TestMiddlePoint(t *testing.T) {
	p1 := GeoPoint{
		Lon: 37.6417350769043,
		Lat: 55.751849391735284,
	}
	p2 := GeoPoint{
		Lon: 37.668514251708984,
		Lat: 55.73261980350401,
	}
	res := GeoPoint{
		Lon: 37.65512796336629,
		Lat: 55.742235325526806,
	}
	mpt := middlePointSegment(p1, p2)
	if mpt != res {
		t.Errorf("Middle point must be %v, but got %v", res, mpt)
	}
}

func TestGreatCircleDistance(t *testing.T) {
	p1 := GeoPoint{
		Lon: 37.6417350769043,
		Lat: 55.751849391735284,
	}
	p2 := GeoPoint{
		Lon: 37.668514251708984,
		Lat: 55.73261980350401,
	}
	res := 2.71693096539 // kilometers
	gcd := greatCircleDistance(p1, p2)
	if Round(gcd, 0.0005) != Round(res, 0.0005) {
		t.Errorf("Great circle dist must be %f, but got %f", res, gcd)
	}
}

func Round(x, unit float64) float64 {
	if x > 0 {
		return float64(int64(x/unit+0.5)) * unit
	}
	return float64(int64(x/unit-0.5)) * unit
}

func TestFindDistance(t *testing.T) {
	p := GeoPoint{Lat: 3.0, Lon: 0.0}
	q := GeoPoint{Lat: 0.0, Lon: 4.0}
	dist := findDistance(p, q)
	if dist != 5.0 {
		t.Errorf("Euclidean distance must be 5.0, but got %f", dist)
	}
}

func TestSphericalLength(t *testing.T) {
	line := []GeoPoint{
		{Lon: 37.6417350769043, Lat: 55.751849391735284},
		{Lon: 37.668514251708984, Lat: 55.73261980350401},
	}
	if math.Abs(getSphericalLength(line)-greatCircleDistance(line[0], line[1])) > 1e-12 {
		t.Errorf("Two-point line length must match segment distance")
	}
	if getSphericalLength(line[:1]) != 0 {
		t.Errorf("Degenerate line must have zero length")
	}
}

func TestReverseLine(t *testing.T) {
	line := []GeoPoint{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}, {Lat: 3, Lon: 3}}
	reversed := reverseLine(line)
	if reversed[0] != line[2] || reversed[2] != line[0] {
		t.Errorf("Line must be reversed, got %v", reversed)
	}
	if line[0] != (GeoPoint{Lat: 1, Lon: 1}) {
		t.Errorf("Source line must stay intact")
	}
}
