package rescuepath

import (
	"math/rand"
)

// KharkivCenter is the default reference point of the simulation
var KharkivCenter = GeoPoint{Lat: 49.9808, Lon: 36.2527}

const (
	stationOffset   = 0.025
	emergencyOffset = 0.03
)

// Station is a fixed depot an emergency vehicle departs from
type Station struct {
	ID    int
	Name  string
	Point GeoPoint
}

// DefaultStations returns six depots laid out around the reference point
func DefaultStations(center GeoPoint) []Station {
	lat, lon := center.Lat, center.Lon
	return []Station{
		{ID: 1, Name: "Central", Point: GeoPoint{Lat: lat, Lon: lon}},
		{ID: 2, Name: "North", Point: GeoPoint{Lat: lat + stationOffset, Lon: lon}},
		{ID: 3, Name: "South", Point: GeoPoint{Lat: lat - stationOffset, Lon: lon}},
		{ID: 4, Name: "East", Point: GeoPoint{Lat: lat, Lon: lon + stationOffset}},
		{ID: 5, Name: "West", Point: GeoPoint{Lat: lat, Lon: lon - stationOffset}},
		{ID: 6, Name: "Northeast", Point: GeoPoint{Lat: lat + stationOffset/1.5, Lon: lon + stationOffset/1.5}},
	}
}

// RandomEmergency draws incident location uniformly around the reference point
func RandomEmergency(rng *rand.Rand, center GeoPoint) GeoPoint {
	return GeoPoint{
		Lat: center.Lat + (rng.Float64()*2.0-1.0)*emergencyOffset,
		Lon: center.Lon + (rng.Float64()*2.0-1.0)*emergencyOffset,
	}
}
