package rescuepath

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(pts []GeoPoint) string {
	b, err := geojson.NewLineStringGeometry(lineToPositions(pts)).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt GeoPoint) string {
	b, err := geojson.NewPointGeometry([]float64{pt.Lon, pt.Lat}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

func lineToPositions(pts []GeoPoint) [][]float64 {
	pts2d := make([][]float64, len(pts))
	for i := range pts {
		pts2d[i] = []float64{pts[i].Lon, pts[i].Lat}
	}
	return pts2d
}

// RouteFeature returns route path with metrics as GeoJSON LineString feature
func RouteFeature(engine *RouteEngine, route Route) *geojson.Feature {
	feature := geojson.NewLineStringFeature(lineToPositions(engine.PathGeometry(route.Path)))
	feature.SetProperty("kind", route.Kind.String())
	feature.SetProperty("name", route.Name)
	feature.SetProperty("distance_km", route.DistanceKm)
	feature.SetProperty("time_min", route.TimeMinutes)
	feature.SetProperty("color", route.Color)
	return feature
}

// BlockedEdgesFeatureCollection returns destroyed segments as GeoJSON LineString features
func BlockedEdgesFeatureCollection(net *RoadNetwork, blockedForward []EdgeID) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, id := range blockedForward {
		line := net.EdgeGeometry(id)
		if len(line) < 2 {
			continue
		}
		feature := geojson.NewLineStringFeature(lineToPositions(line))
		feature.SetProperty("kind", "blocked_road")
		feature.SetProperty("color", "#ff0000")
		fc.AddFeature(feature)
	}
	return fc
}

// ImpactsFeatureCollection returns impact events as GeoJSON Point features
func ImpactsFeatureCollection(impacts []ImpactEvent) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, impact := range impacts {
		feature := geojson.NewPointFeature([]float64{impact.Point.Lon, impact.Point.Lat})
		feature.SetProperty("kind", "impact")
		feature.SetProperty("roads_damaged", impact.RoadsDamaged)
		fc.AddFeature(feature)
	}
	return fc
}

// StationsFeatureCollection returns depots as GeoJSON Point features
func StationsFeatureCollection(stations []Station) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, station := range stations {
		feature := geojson.NewPointFeature([]float64{station.Point.Lon, station.Point.Lat})
		feature.SetProperty("kind", "station")
		feature.SetProperty("id", station.ID)
		feature.SetProperty("name", station.Name)
		fc.AddFeature(feature)
	}
	return fc
}

// ScenarioFeatureCollection assembles the whole render payload: depots,
// emergency location, destroyed segments, impact events and computed routes
func ScenarioFeatureCollection(engine *RouteEngine, net *RoadNetwork, stations []Station, emergency GeoPoint, report DamageReport, routes []Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, feature := range StationsFeatureCollection(stations).Features {
		fc.AddFeature(feature)
	}
	emergencyFeature := geojson.NewPointFeature([]float64{emergency.Lon, emergency.Lat})
	emergencyFeature.SetProperty("kind", "emergency")
	fc.AddFeature(emergencyFeature)
	for _, feature := range BlockedEdgesFeatureCollection(net, report.BlockedForward).Features {
		fc.AddFeature(feature)
	}
	for _, feature := range ImpactsFeatureCollection(report.Impacts).Features {
		fc.AddFeature(feature)
	}
	for _, route := range routes {
		fc.AddFeature(RouteFeature(engine, route))
	}
	return fc
}
