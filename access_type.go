package bikestress

type AccessType uint16

const (
	ACCESS_HIGHWAY = AccessType(iota + 1)
	ACCESS_OSM_ACCESS
	ACCESS_SERVICE
	ACCESS_BICYCLE
	ACCESS_UNDEFINED = AccessType(0)
)

func (iotaIdx AccessType) String() string {
	return [...]string{"undefined", "highway", "access", "service", "bicycle"}[iotaIdx]
}

// Key returns raw attribute key holding value for given access type
func (iotaIdx AccessType) Key() string {
	return [...]string{"", KEY_HIGHWAY, KEY_OSM_ACCESS, KEY_SERVICE, KEY_BICYCLE}[iotaIdx]
}

const (
	BICYCLE_DESIGNATED = "designated"
)

// isBicycleDesignated reports whether any token of `bicycle` attribute is 'designated'
func isBicycleDesignated(attrs Attributes) bool {
	for _, token := range NormalizeTokens(attrs.Get(KEY_BICYCLE)) {
		if token == BICYCLE_DESIGNATED {
			return true
		}
	}
	return false
}

// isBikeAllowed checks tags of OSM way against bicycle exclusion lists
func isBikeAllowed(tags map[string]string) bool {
	// Explicit permission wins over exclusions
	if _, ok := bikeIncludedAccess[tags[KEY_BICYCLE]]; ok {
		return true
	}
	if _, ok := bikeExcludedHighways[tags[KEY_HIGHWAY]]; ok {
		return false
	}
	for accessType, values := range bikeExcludedAccess {
		if _, ok := values[tags[accessType.Key()]]; ok {
			return false
		}
	}
	return true
}
