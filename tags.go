package bikestress

// Raw attribute keys consumed by the scoring pipeline. Everything else passes through untouched
const (
	KEY_HIGHWAY             = "highway"
	KEY_MAXSPEED            = "maxspeed"
	KEY_LANES               = "lanes"
	KEY_WIDTH               = "width"
	KEY_BICYCLE             = "bicycle"
	KEY_CYCLEWAY            = "cycleway"
	KEY_CYCLEWAY_BOTH       = "cycleway:both"
	KEY_CYCLEWAY_LEFT       = "cycleway:left"
	KEY_CYCLEWAY_RIGHT      = "cycleway:right"
	KEY_CYCLEWAY_BUFFER     = "cycleway:buffer"
	KEY_CYCLEWAY_SEPARATION = "cycleway:separation"
	KEY_ONEWAY              = "oneway"
	KEY_ONEWAY_BICYCLE      = "oneway:bicycle"
	KEY_JUNCTION            = "junction"
	KEY_NAME                = "name"
	KEY_SERVICE             = "service"
	KEY_OSM_ACCESS          = "access"
	KEY_AREA                = "area"
)

var (
	// Order matters: it defines the order of separation candidates
	cyclewayKeys = []string{KEY_CYCLEWAY, KEY_CYCLEWAY_BOTH, KEY_CYCLEWAY_LEFT, KEY_CYCLEWAY_RIGHT}

	// requiredColumns must be present on the graph for scoring to make sense
	requiredColumns = []string{KEY_HIGHWAY}

	// Highway values which aren't rideable network for bicycles
	bikeExcludedHighways = map[string]struct{}{
		"footway":       {},
		"steps":         {},
		"corridor":      {},
		"elevator":      {},
		"escalator":     {},
		"motor":         {},
		"motorway":      {},
		"motorway_link": {},
		"construction":  {},
		"proposed":      {},
		"raceway":       {},
		"abandoned":     {},
		"planned":       {},
		"platform":      {},
		"bus_stop":      {},
	}

	bikeIncludedAccess = map[string]struct{}{
		"yes":        {},
		"designated": {},
		"permissive": {},
	}

	bikeExcludedAccess = map[AccessType]map[string]struct{}{
		ACCESS_BICYCLE: {
			"no": {},
		},
		ACCESS_SERVICE: {
			"private": {},
		},
		ACCESS_OSM_ACCESS: {
			"private": {},
		},
	}

	// See ref.: https://wiki.openstreetmap.org/wiki/Key:oneway
	onewayForward = map[string]struct{}{
		"yes":  {},
		"true": {},
		"1":    {},
	}
	onewayReversed = map[string]struct{}{
		"-1":      {},
		"reverse": {},
	}
	// Junctions which are implicitly oneway
	junctionTypes = map[string]struct{}{
		"roundabout": {},
		"circular":   {},
	}
)

// Attributes is raw attribute map of an edge
type Attributes map[string]RawValue

// Get returns value for key or Missing() when there is no such key
func (attrs Attributes) Get(key string) RawValue {
	if v, ok := attrs[key]; ok {
		return v
	}
	return Missing()
}

// Has reports whether key is present (even if its value is null)
func (attrs Attributes) Has(key string) bool {
	_, ok := attrs[key]
	return ok
}

