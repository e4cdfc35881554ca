// Package initializers provides the standard ways of setting the starting weights and biases of a
// perceptron.Network. Every Initializer draws from the *rand.Rand that it is given, so that a
// seeded source gives the same Network every time.
package initializers

import (
	"math"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// Initializer mirrors perceptron.Initializer, which cannot be imported here without a cycle.
type Initializer interface {
	Init(int, *rand.Rand) float64
}

// default values, because 'default' is a keyword
var defaultValue = map[string]float64{
	"uniform-lower": -1,
	"uniform-upper": 1,
	"normal-mean":   0,
	"normal-sd":     1,
	"fanin-factor":  6,
}

// SetDefault sets one of the default values used when constructing Initializers. The values that
// can be set are: "uniform-lower", "uniform-upper", "normal-mean", "normal-sd", and
// "fanin-factor".
func SetDefault(name string, value float64) error {
	if _, ok := defaultValue[name]; !ok {
		return errors.Errorf("Value with name %q does not exist", name)
	} else if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Errorf("Value is invalid (%v)", value)
	}

	defaultValue[name] = value
	return nil
}

var byName = map[string]func() Initializer{
	"uniform": func() Initializer { return Uniform() },
	"normal":  func() Initializer { return Normal() },
	"fan-in":  func() Initializer { return FanIn() },
	"xavier":  func() Initializer { return FanIn() },
	"lecun":   func() Initializer { return LeCun() },
	"he":      func() Initializer { return He() },
}

// Lookup returns a new Initializer with default settings, given its name. The known names are:
// "uniform", "normal", "fan-in" (also "xavier"), "lecun", and "he".
func Lookup(name string) (Initializer, error) {
	f, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Errorf("Unknown initializer %q", name)
	}

	return f(), nil
}
