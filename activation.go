package perceptron

import (
	"fmt"
	"math"
	"strings"
)

// Activation is the nonlinearity applied to a Unit's weighted sum. The set of Activations is
// closed: any value other than the constants below is rejected with UnsupportedActivationError.
type Activation uint8

const (
	Sigmoid Activation = iota
	Tanh

	numActivations
)

var activationNames = [numActivations]string{
	Sigmoid: "sigmoid",
	Tanh:    "tanh",
}

// Valid returns whether or not the Activation is one of the supported kinds.
func (a Activation) Valid() bool {
	return a < numActivations
}

func (a Activation) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Activation(%d)", uint8(a))
	}

	return activationNames[a]
}

// Apply returns the activation of the given weighted sum.
func (a Activation) Apply(sum float64) (float64, error) {
	switch a {
	case Sigmoid:
		return 1 / (1 + math.Exp(-sum)), nil
	case Tanh:
		return math.Tanh(sum), nil
	default:
		return 0, UnsupportedActivationError{Activation: a}
	}
}

// Deriv returns the derivative of the activation, expressed in terms of its output y (not its
// input): y(1-y) for sigmoid and 1-y² for tanh.
func (a Activation) Deriv(y float64) (float64, error) {
	switch a {
	case Sigmoid:
		return y * (1 - y), nil
	case Tanh:
		return 1 - y*y, nil
	default:
		return 0, UnsupportedActivationError{Activation: a}
	}
}

// ParseActivation returns the Activation with the given name ("sigmoid" or "tanh"), ignoring case
// and surrounding whitespace. "logistic" is accepted as an alias for sigmoid.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sigmoid", "logistic":
		return Sigmoid, nil
	case "tanh":
		return Tanh, nil
	default:
		return 0, UnsupportedActivationError{Activation: numActivations, Name: name}
	}
}

// MarshalText is the implementation of encoding.TextMarshaler
func (a Activation) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, UnsupportedActivationError{Activation: a}
	}

	return []byte(activationNames[a]), nil
}

// UnmarshalText is the implementation of encoding.TextUnmarshaler
func (a *Activation) UnmarshalText(text []byte) error {
	act, err := ParseActivation(string(text))
	if err != nil {
		return err
	}

	*a = act
	return nil
}
