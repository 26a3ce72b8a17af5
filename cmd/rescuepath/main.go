package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/LdDl/ch"
	"github.com/openrescue/rescuepath"
	"github.com/pkg/errors"
)

var (
	osmFileName   = flag.String("file", "kharkiv.osm.pbf", "Filename of *.osm.pbf file (it has to be compressed)")
	seed          = flag.Int64("seed", time.Now().UnixNano(), "Seed for emergency and damage randomness")
	stationID     = flag.Int("station", 1, "Depot to dispatch from (1-6)")
	out           = flag.String("out", "scenario.geojson", "Filename of output GeoJSON scenario")
	doDamage      = flag.Bool("damage", true, "Simulate road damage wave before routing?")
	csvOut        = flag.String("csv", "", "Optional filename prefix for network CSV export")
	doContraction = flag.Bool("contract", false, "Export routable graph with contraction hierarchies? E.g.: if output name is 'graph.csv' then 3 files will be produced: 'graph.csv' (edges), 'graph_vertices.csv', 'graph_shortcuts.csv'")
	contractOut   = flag.String("contract-out", "graph.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file for contraction export")
	verbose       = flag.Bool("verbose", true, "Print progress and scenario summary?")
)

func main() {
	flag.Parse()

	net, err := rescuepath.LoadFromOSMFile(*osmFileName, rescuepath.WithVerbose(*verbose))
	if err != nil {
		fmt.Println(err)
		return
	}

	engine, err := rescuepath.NewRouteEngine(net)
	if err != nil {
		fmt.Println(err)
		return
	}

	stations := rescuepath.DefaultStations(rescuepath.KharkivCenter)
	if *stationID < 1 || *stationID > len(stations) {
		fmt.Printf("No station with ID %d (expected 1-%d)\n", *stationID, len(stations))
		return
	}
	station := stations[*stationID-1]

	rng := rand.New(rand.NewSource(*seed))
	emergency := rescuepath.RandomEmergency(rng, rescuepath.KharkivCenter)
	if *verbose {
		fmt.Printf("Emergency at: %.4f, %.4f\n", emergency.Lat, emergency.Lon)
	}

	blocked := rescuepath.NewBlockedEdgeSet()
	report := rescuepath.DamageReport{}
	if *doDamage {
		simulator := rescuepath.NewDamageSimulator(net, rng)
		report = simulator.Simulate(rescuepath.KharkivCenter, blocked)
		if *verbose {
			fmt.Printf("%d impacts, %d roads blocked\n", len(report.Impacts), report.TotalBlocked)
		}
	}

	routes := engine.FindRoutes(station.Point, emergency, blocked)
	if *verbose {
		if len(routes) == 0 {
			fmt.Println("No route available - all roads blocked")
		}
		for _, route := range routes {
			fmt.Printf("%s: %.1f min, %.2f km (%d nodes)\n", route.Name, route.TimeMinutes, route.DistanceKm, len(route.Path))
		}
	}

	fc := rescuepath.ScenarioFeatureCollection(engine, net, stations, emergency, report, routes)
	b, err := fc.MarshalJSON()
	if err != nil {
		fmt.Println(errors.Wrap(err, "Can't marshal scenario"))
		return
	}
	err = ioutil.WriteFile(*out, b, 0644)
	if err != nil {
		fmt.Println(errors.Wrap(err, "Can't write scenario"))
		return
	}

	if *csvOut != "" {
		err = net.ExportToCSV(*csvOut)
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	if *doContraction {
		err = exportContracted(net, blocked, *contractOut)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}

// exportContracted dumps the routable graph (minus blocked edges) as CSV
// files with prepared contraction hierarchies for downstream CH-based routers
func exportContracted(net *rescuepath.RoadNetwork, blocked *rescuepath.BlockedEdgeSet, fname string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameEdges := fmt.Sprintf(fnameParts[0] + ".csv")
	fnameVertices := fmt.Sprintf(fnameParts[0] + "_vertices.csv")
	fnameShortcuts := fmt.Sprintf(fnameParts[0] + "_shortcuts.csv")

	fileEdges, err := os.Create(fnameEdges)
	if err != nil {
		return errors.Wrap(err, "Can't create edges file")
	}
	defer fileEdges.Close()
	writerEdges := csv.NewWriter(fileEdges)
	defer writerEdges.Flush()
	writerEdges.Comma = ';'
	err = writerEdges.Write([]string{"from_vertex_id", "to_vertex_id", "weight", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write edges header")
	}

	graph := ch.Graph{}
	for _, edge := range net.Edges() {
		if blocked.IsBlocked(edge.ID) {
			continue
		}
		source := int64(edge.ID.Source)
		target := int64(edge.ID.Target)
		err := graph.CreateVertex(source)
		if err != nil {
			return errors.Wrap(err, "Can't create source vertex")
		}
		err = graph.CreateVertex(target)
		if err != nil {
			return errors.Wrap(err, "Can't create target vertex")
		}
		err = graph.AddEdge(source, target, edge.LengthMeters)
		if err != nil {
			return errors.Wrap(err, "Can't wrap source and target vertices as edge")
		}
		err = writerEdges.Write([]string{
			fmt.Sprintf("%d", source),
			fmt.Sprintf("%d", target),
			fmt.Sprintf("%f", edge.LengthMeters),
			rescuepath.PrepareWKTLinestring(net.EdgeGeometry(edge.ID)),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}

	fmt.Println("Starting contraction process....")
	st := time.Now()
	graph.PrepareContractionHierarchies()
	fmt.Printf("Done contraction process in %v\n", time.Since(st))

	fileVertices, err := os.Create(fnameVertices)
	if err != nil {
		return errors.Wrap(err, "Can't create vertices file")
	}
	defer fileVertices.Close()
	writerVertices := csv.NewWriter(fileVertices)
	defer writerVertices.Flush()
	writerVertices.Comma = ';'
	err = writerVertices.Write([]string{"vertex_id", "order_pos", "importance", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write vertices header")
	}
	vertices := graph.Vertices
	for i := 0; i < len(vertices); i++ {
		label := vertices[i].Label
		geomStr := ""
		if node, ok := net.Node(rescuepath.NodeID(label)); ok {
			geomStr = rescuepath.PrepareWKTPoint(node.Point())
		}
		err = writerVertices.Write([]string{
			fmt.Sprintf("%d", label),
			fmt.Sprintf("%d", vertices[i].OrderPos()),
			fmt.Sprintf("%d", vertices[i].Importance()),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}

	err = graph.ExportShortcutsToFile(fnameShortcuts)
	if err != nil {
		return errors.Wrap(err, "Can't export shortcuts")
	}
	return nil
}
