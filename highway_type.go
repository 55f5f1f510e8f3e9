package bikestress

type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_RESIDENTIAL
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_TRACK
	HIGHWAY_CYCLEWAY
	HIGHWAY_PATH
	HIGHWAY_FOOTWAY
	HIGHWAY_PEDESTRIAN
	HIGHWAY_BRIDLEWAY
	HIGHWAY_STEPS
	HIGHWAY_BUSWAY
	HIGHWAY_UNDEFINED = HighwayType(0)
)

func (iotaIdx HighwayType) String() string {
	return [...]string{"undefined", "motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link", "secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "living_street", "service", "unclassified", "track", "cycleway", "path", "footway", "pedestrian", "bridleway", "steps", "busway"}[iotaIdx]
}

func getHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return HIGHWAY_UNDEFINED
}

// StreetClass is a bucket of street types with similar traffic stress
type StreetClass uint16

const (
	CLASS_DEDICATED_PATH = StreetClass(iota + 1)
	CLASS_RESIDENTIAL
	CLASS_MEDIUM_CAPACITY
	CLASS_MOTORWAY
)

func (iotaIdx StreetClass) String() string {
	return [...]string{"dedicated_path", "residential", "medium-capacity", "motorway"}[iotaIdx-1]
}

// Score returns classification score of the bucket (higher is friendlier for bicycles)
func (iotaIdx StreetClass) Score() float64 {
	return classificationScores[iotaIdx]
}

const (
	DEFAULT_STREET_CLASS = CLASS_MEDIUM_CAPACITY
)

var (
	highwaysTypes = map[string]HighwayType{
		"motorway":       HIGHWAY_MOTORWAY,
		"motorway_link":  HIGHWAY_MOTORWAY_LINK,
		"trunk":          HIGHWAY_TRUNK,
		"trunk_link":     HIGHWAY_TRUNK_LINK,
		"primary":        HIGHWAY_PRIMARY,
		"primary_link":   HIGHWAY_PRIMARY_LINK,
		"secondary":      HIGHWAY_SECONDARY,
		"secondary_link": HIGHWAY_SECONDARY_LINK,
		"tertiary":       HIGHWAY_TERTIARY,
		"tertiary_link":  HIGHWAY_TERTIARY_LINK,
		"residential":    HIGHWAY_RESIDENTIAL,
		"living_street":  HIGHWAY_LIVING_STREET,
		"service":        HIGHWAY_SERVICE,
		"unclassified":   HIGHWAY_UNCLASSIFIED,
		"track":          HIGHWAY_TRACK,
		"cycleway":       HIGHWAY_CYCLEWAY,
		"path":           HIGHWAY_PATH,
		"footway":        HIGHWAY_FOOTWAY,
		"pedestrian":     HIGHWAY_PEDESTRIAN,
		"bridleway":      HIGHWAY_BRIDLEWAY,
		"steps":          HIGHWAY_STEPS,
		"busway":         HIGHWAY_BUSWAY,
	}

	// See ref.: https://wiki.openstreetmap.org/wiki/Key:highway
	// Types without an entry (including tertiary_link) fall back to DEFAULT_STREET_CLASS
	streetClassByHighway = map[HighwayType]StreetClass{
		HIGHWAY_CYCLEWAY:       CLASS_DEDICATED_PATH,
		HIGHWAY_PATH:           CLASS_DEDICATED_PATH,
		HIGHWAY_PEDESTRIAN:     CLASS_DEDICATED_PATH,
		HIGHWAY_FOOTWAY:        CLASS_DEDICATED_PATH,
		HIGHWAY_BRIDLEWAY:      CLASS_DEDICATED_PATH,
		HIGHWAY_STEPS:          CLASS_DEDICATED_PATH,
		HIGHWAY_RESIDENTIAL:    CLASS_RESIDENTIAL,
		HIGHWAY_LIVING_STREET:  CLASS_RESIDENTIAL,
		HIGHWAY_SERVICE:        CLASS_RESIDENTIAL,
		HIGHWAY_UNCLASSIFIED:   CLASS_RESIDENTIAL,
		HIGHWAY_TRACK:          CLASS_RESIDENTIAL,
		HIGHWAY_TERTIARY:       CLASS_MEDIUM_CAPACITY,
		HIGHWAY_SECONDARY:      CLASS_MEDIUM_CAPACITY,
		HIGHWAY_SECONDARY_LINK: CLASS_MEDIUM_CAPACITY,
		HIGHWAY_PRIMARY:        CLASS_MEDIUM_CAPACITY,
		HIGHWAY_PRIMARY_LINK:   CLASS_MEDIUM_CAPACITY,
		HIGHWAY_TRUNK:          CLASS_MOTORWAY,
		HIGHWAY_TRUNK_LINK:     CLASS_MOTORWAY,
		HIGHWAY_MOTORWAY:       CLASS_MOTORWAY,
		HIGHWAY_MOTORWAY_LINK:  CLASS_MOTORWAY,
		HIGHWAY_BUSWAY:         CLASS_MOTORWAY,
	}

	classificationScores = map[StreetClass]float64{
		CLASS_DEDICATED_PATH:  10,
		CLASS_RESIDENTIAL:     7,
		CLASS_MEDIUM_CAPACITY: 3,
		CLASS_MOTORWAY:        0,
	}
)

// StreetClassOf returns bucket for a single street type token
func StreetClassOf(streetType string) StreetClass {
	if class, ok := streetClassByHighway[getHighwayType(streetType)]; ok {
		return class
	}
	return DEFAULT_STREET_CLASS
}

// ClassifyStreet picks the primary street type from raw `highway` value and its bucket.
// For sequences the most bike-friendly declared type wins (first one on ties).
// Missing value gives empty street type and the default bucket.
func ClassifyStreet(raw RawValue) (string, StreetClass) {
	best := ""
	bestClass := DEFAULT_STREET_CLASS
	found := false
	for _, item := range raw.Items() {
		token := NormalizeToken(item)
		if token == TOKEN_NONE {
			continue
		}
		class := StreetClassOf(token)
		if !found || class.Score() > bestClass.Score() {
			best, bestClass, found = token, class, true
		}
	}
	return best, bestClass
}
