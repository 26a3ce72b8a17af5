package rescuepath

type RoadClass uint16

const (
	CLASS_MOTORWAY = RoadClass(iota + 1)
	CLASS_TRUNK
	CLASS_PRIMARY
	CLASS_SECONDARY
	CLASS_TERTIARY
	CLASS_RESIDENTIAL
	CLASS_LIVING_STREET
	CLASS_SERVICE
	CLASS_UNCLASSIFIED
)

func (iotaIdx RoadClass) String() string {
	return [...]string{"motorway", "trunk", "primary", "secondary", "tertiary", "residential", "living_street", "service", "unclassified"}[iotaIdx-1]
}

// roadComposition keeps base functional class and whether OSM way was a *_link ramp
type roadComposition struct {
	class  RoadClass
	isLink bool
}

func getRoadComposition(highway string) (roadComposition, bool) {
	found, ok := roadCompositionByHighway[highway]
	return found, ok
}

const (
	// Travel speed for non-link motorway/trunk/primary edges (km/h)
	speedMajor = 80.0
	// Travel speed for every other drivable edge (km/h)
	speedDefault = 60.0
)

// travelSpeed returns speed estimation for given edge composition (km/h)
func travelSpeed(class RoadClass, isLink bool) float64 {
	if isLink {
		return speedDefault
	}
	switch class {
	case CLASS_MOTORWAY, CLASS_TRUNK, CLASS_PRIMARY:
		return speedMajor
	default:
		return speedDefault
	}
}

// isMajorClass reports whether given class is considered major road (damage simulation candidates)
func isMajorClass(class RoadClass) bool {
	switch class {
	case CLASS_MOTORWAY, CLASS_TRUNK, CLASS_PRIMARY, CLASS_SECONDARY:
		return true
	default:
		return false
	}
}

var (
	roadCompositionByHighway = map[string]roadComposition{
		"motorway":         {CLASS_MOTORWAY, false},
		"motorway_link":    {CLASS_MOTORWAY, true},
		"trunk":            {CLASS_TRUNK, false},
		"trunk_link":       {CLASS_TRUNK, true},
		"primary":          {CLASS_PRIMARY, false},
		"primary_link":     {CLASS_PRIMARY, true},
		"secondary":        {CLASS_SECONDARY, false},
		"secondary_link":   {CLASS_SECONDARY, true},
		"tertiary":         {CLASS_TERTIARY, false},
		"tertiary_link":    {CLASS_TERTIARY, true},
		"residential":      {CLASS_RESIDENTIAL, false},
		"residential_link": {CLASS_RESIDENTIAL, true},
		"living_street":    {CLASS_LIVING_STREET, false},
		"service":          {CLASS_SERVICE, false},
		"services":         {CLASS_SERVICE, false},
		"road":             {CLASS_UNCLASSIFIED, false},
		"unclassified":     {CLASS_UNCLASSIFIED, false},
	}
)
