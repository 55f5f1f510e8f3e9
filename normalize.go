package bikestress

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	FEET_TO_METERS = 0.3048
	KMH_TO_MPH     = 1.0 / 1.609344
	TOKEN_NONE     = "none"
)

var (
	mphRegExp      = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:mph)?$`)
	kmhRegExp      = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:km/h|kmh|kph)$`)
	feetRegExp     = regexp.MustCompile(`^(\d+(?:\.\d+)?)'(?:\s*(\d+(?:\.\d+)?)")?`)
	numberRegExp   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	noneLikeTokens = map[string]struct{}{
		"":     {},
		"no":   {},
		"none": {},
		"nan":  {},
		"null": {},
		"<na>": {},
	}
)

// scalarParser parses single raw item into canonical number
type scalarParser func(s Scalar) (float64, error)

// ExtractSpeed returns canonical speed in mph.
// Bare numbers are mph, "km/h" values are converted. For sequences the maximum parsed value wins.
func ExtractSpeed(raw RawValue) Value {
	v, _ := extractMax(raw, parseSpeed)
	return v
}

// ExtractLanes returns canonical lane count. For sequences the maximum parsed value wins.
func ExtractLanes(raw RawValue) Value {
	v, _ := extractMax(raw, parseLanes)
	return v
}

// ExtractWidth returns canonical width in meters.
// Accepts meters ("3.5", "10m") and feet/inches notation ("9'", "9'6\""). For sequences the maximum parsed value wins.
func ExtractWidth(raw RawValue) Value {
	v, _ := extractMax(raw, parseWidth)
	return v
}

// extractMax applies parser to every item of raw value and returns the maximum of parsed numbers.
// Items which can't be parsed are reported back as errors and skipped
func extractMax(raw RawValue, parser scalarParser) (Value, []error) {
	var errs []error
	result := Unknown()
	for _, item := range raw.Items() {
		if item.IsNull() {
			continue
		}
		parsed, err := parser(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if current, ok := result.Get(); !ok || parsed > current {
			result = Known(parsed)
		}
	}
	return result, errs
}

func parseSpeed(s Scalar) (float64, error) {
	if s.IsNumber() {
		return s.Float(), nil
	}
	str := strings.ToLower(strings.TrimSpace(s.String()))
	if found := mphRegExp.FindStringSubmatch(str); found != nil {
		return strconv.ParseFloat(found[1], 64)
	}
	if found := kmhRegExp.FindStringSubmatch(str); found != nil {
		kmh, err := strconv.ParseFloat(found[1], 64)
		if err != nil {
			return 0, err
		}
		return kmh * KMH_TO_MPH, nil
	}
	return 0, &ParseError{Attribute: KEY_MAXSPEED, Raw: s.String()}
}

func parseLanes(s Scalar) (float64, error) {
	if s.IsNumber() {
		return s.Float(), nil
	}
	lanes, err := strconv.ParseFloat(strings.TrimSpace(s.String()), 64)
	if err != nil {
		return 0, &ParseError{Attribute: KEY_LANES, Raw: s.String()}
	}
	return lanes, nil
}

func parseWidth(s Scalar) (float64, error) {
	if s.IsNumber() {
		return s.Float(), nil
	}
	str := strings.TrimSpace(s.String())
	if strings.Contains(str, "'") {
		if found := feetRegExp.FindStringSubmatch(str); found != nil {
			feet, _ := strconv.ParseFloat(found[1], 64)
			inches := 0.0
			if found[2] != "" {
				inches, _ = strconv.ParseFloat(found[2], 64)
			}
			return (feet + inches/12.0) * FEET_TO_METERS, nil
		}
		if number := numberRegExp.FindString(str); number != "" {
			feet, _ := strconv.ParseFloat(number, 64)
			return feet * FEET_TO_METERS, nil
		}
		return 0, &ParseError{Attribute: KEY_WIDTH, Raw: str}
	}
	if number := numberRegExp.FindString(str); number != "" {
		return strconv.ParseFloat(number, 64)
	}
	return 0, &ParseError{Attribute: KEY_WIDTH, Raw: str}
}

// NormalizeToken canonicalizes categorical token: lower-cased, trimmed, placeholders become "none"
func NormalizeToken(s Scalar) string {
	if s.IsNull() {
		return TOKEN_NONE
	}
	token := strings.ToLower(strings.TrimSpace(s.String()))
	if _, ok := noneLikeTokens[token]; ok {
		return TOKEN_NONE
	}
	return token
}

// NormalizeTokens canonicalizes scalar or sequence of categorical tokens. Missing value yields ["none"]
func NormalizeTokens(raw RawValue) []string {
	items := raw.Items()
	if len(items) == 0 {
		return []string{TOKEN_NONE}
	}
	tokens := make([]string, len(items))
	for i, item := range items {
		tokens[i] = NormalizeToken(item)
	}
	return tokens
}

// CyclewayCandidates unions cycleway tokens from the overall tag and all side-specific tags.
// Any of them may carry the authoritative signal, so none is skipped.
func CyclewayCandidates(attrs Attributes) []string {
	candidates := make([]string, 0, len(cyclewayKeys))
	for _, key := range cyclewayKeys {
		candidates = append(candidates, NormalizeTokens(attrs.Get(key))...)
	}
	return candidates
}
