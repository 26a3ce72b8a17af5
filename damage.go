package rescuepath

import (
	"math/rand"
	"sort"
)

const (
	// Candidate edges are prefiltered to major roads within this radius
	// around the reference point (degrees)
	DEFAULT_MAJOR_RADIUS = 0.015
	// Impact points scatter uniformly within this radius around the
	// reference point (degrees)
	DEFAULT_SCATTER_RADIUS = 0.02
	// Edge midpoints within this radius around an impact point are damage
	// candidates (degrees, roughly 900 meters at mid latitudes)
	DEFAULT_DAMAGE_RADIUS = 0.008
)

// ImpactEvent is a single simulated damage occurrence. RoadsDamaged counts
// every directed edge blocked by the impact, reverse directions included.
type ImpactEvent struct {
	Point        GeoPoint
	RoadsDamaged int
}

// DamageReport summarizes one damage wave
type DamageReport struct {
	Impacts []ImpactEvent
	// BlockedForward lists forward directions of destroyed segments in
	// blocking order; reverse directions are present in the blocked set but
	// excluded here (rendering draws each destroyed segment once)
	BlockedForward []EdgeID
	TotalBlocked   int
}

type damageConfig struct {
	majorRadius   float64
	scatterRadius float64
	damageRadius  float64
	minImpacts    int
	maxImpacts    int
	minEdges      int
	maxEdges      int
}

// DamageOption customizes damage simulation
type DamageOption func(*damageConfig)

// WithMajorRadius sets major-road prefilter radius around the reference point (degrees)
func WithMajorRadius(radiusDeg float64) DamageOption {
	return func(cfg *damageConfig) {
		cfg.majorRadius = radiusDeg
	}
}

// WithScatterRadius sets impact point scatter radius around the reference point (degrees)
func WithScatterRadius(radiusDeg float64) DamageOption {
	return func(cfg *damageConfig) {
		cfg.scatterRadius = radiusDeg
	}
}

// WithDamageRadius sets maximum distance from impact point to candidate edge midpoint (degrees)
func WithDamageRadius(radiusDeg float64) DamageOption {
	return func(cfg *damageConfig) {
		cfg.damageRadius = radiusDeg
	}
}

// WithImpactCountRange sets inclusive range for number of impact points per wave
func WithImpactCountRange(min, max int) DamageOption {
	return func(cfg *damageConfig) {
		cfg.minImpacts = min
		cfg.maxImpacts = max
	}
}

// WithEdgesPerImpactRange sets inclusive range for number of edges destroyed per impact
func WithEdgesPerImpactRange(min, max int) DamageOption {
	return func(cfg *damageConfig) {
		cfg.minEdges = min
		cfg.maxEdges = max
	}
}

// DamageSimulator decides which major-road edges become impassable after a
// wave of simulated impacts. All randomness goes through the injected
// generator, so seeded runs are reproducible.
type DamageSimulator struct {
	net *RoadNetwork
	rng *rand.Rand
	cfg damageConfig
}

// NewDamageSimulator builds simulator over given network and random source
func NewDamageSimulator(net *RoadNetwork, rng *rand.Rand, options ...DamageOption) *DamageSimulator {
	cfg := damageConfig{
		majorRadius:   DEFAULT_MAJOR_RADIUS,
		scatterRadius: DEFAULT_SCATTER_RADIUS,
		damageRadius:  DEFAULT_DAMAGE_RADIUS,
		minImpacts:    3,
		maxImpacts:    5,
		minEdges:      2,
		maxEdges:      4,
	}
	for _, option := range options {
		option(&cfg)
	}
	return &DamageSimulator{
		net: net,
		rng: rng,
		cfg: cfg,
	}
}

type damageCandidate struct {
	edge *Edge
	dist float64
}

// Simulate models one damage wave around the reference point. The blocked
// set is reset first: waves replace each other instead of accumulating.
//
// Per impact point the nearest not-yet-blocked major edges are selected and
// blocked in the forward direction; when the reverse direction exists in the
// network it is blocked as well, modeling the entire segment being
// destroyed. Blocking an edge missing from the network is a no-op.
func (sim *DamageSimulator) Simulate(center GeoPoint, blocked *BlockedEdgeSet) DamageReport {
	blocked.Reset()

	report := DamageReport{
		Impacts:        []ImpactEvent{},
		BlockedForward: []EdgeID{},
	}

	majorEdges := sim.net.MajorEdges(center, sim.cfg.majorRadius)
	if len(majorEdges) == 0 {
		return report
	}

	impactsNum := sim.intInRange(sim.cfg.minImpacts, sim.cfg.maxImpacts)
	for i := 0; i < impactsNum; i++ {
		impact := GeoPoint{
			Lat: center.Lat + sim.uniform(sim.cfg.scatterRadius),
			Lon: center.Lon + sim.uniform(sim.cfg.scatterRadius),
		}

		candidates := []damageCandidate{}
		for _, edge := range majorEdges {
			if blocked.IsBlocked(edge.ID) {
				continue
			}
			mid, err := sim.net.EdgeMidpoint(edge.ID)
			if err != nil {
				continue
			}
			dist := findDistance(mid, impact)
			if dist <= sim.cfg.damageRadius {
				candidates = append(candidates, damageCandidate{edge: edge, dist: dist})
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].dist < candidates[j].dist
		})

		take := sim.intInRange(sim.cfg.minEdges, sim.cfg.maxEdges)
		if take > len(candidates) {
			take = len(candidates)
		}

		damaged := 0
		for _, candidate := range candidates[:take] {
			id := candidate.edge.ID
			if !blocked.IsBlocked(id) {
				blocked.Block(id)
				report.BlockedForward = append(report.BlockedForward, id)
				damaged++
			}
			// Whole road is destroyed, not a single lane
			reversed := id.Reversed()
			if sim.net.HasEdge(reversed) && !blocked.IsBlocked(reversed) {
				blocked.Block(reversed)
				damaged++
			}
		}
		report.Impacts = append(report.Impacts, ImpactEvent{
			Point:        impact,
			RoadsDamaged: damaged,
		})
	}

	report.TotalBlocked = blocked.Len()
	return report
}

// uniform draws from [-radius, radius)
func (sim *DamageSimulator) uniform(radius float64) float64 {
	return (sim.rng.Float64()*2.0 - 1.0) * radius
}

// intInRange draws from inclusive [min, max]
func (sim *DamageSimulator) intInRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + sim.rng.Intn(max-min+1)
}
