package bikestress

import (
	"strings"

	"github.com/pkg/errors"
)

// Weight selects edge attribute minimized by the router
type Weight string

const (
	WEIGHT_COMPOSITE = Weight("composite_score")
	WEIGHT_LENGTH    = Weight("length")
)

const (
	// MAX_SCORE is the upper bound of every factor score and therefore of composite score
	MAX_SCORE = 10.0
)

// ParseWeight parses weight selector. Only composite score and raw length are supported
func ParseWeight(str string) (Weight, error) {
	w := Weight(strings.ToLower(strings.TrimSpace(str)))
	if err := w.Validate(); err != nil {
		return "", err
	}
	return w, nil
}

// Validate returns *ConfigError for unsupported selectors
func (w Weight) Validate() error {
	switch w {
	case WEIGHT_COMPOSITE, WEIGHT_LENGTH:
		return nil
	default:
		return errors.WithStack(&ConfigError{Field: "weight", Value: string(w)})
	}
}

func (w Weight) String() string {
	return string(w)
}
