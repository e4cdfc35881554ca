package perceptron

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Unit is a single neuron: a weighted sum of its inputs plus a bias, passed through the
// Activation of its Layer.
type Unit struct {
	Weights []float64
	Bias    float64
}

// newUnit makes a Unit with the given number of inputs, drawing every weight and the bias from
// init.
func newUnit(inputWidth int, init Initializer, rng *rand.Rand) *Unit {
	u := &Unit{Weights: make([]float64, inputWidth)}
	for i := range u.Weights {
		u.Weights[i] = init.Init(inputWidth, rng)
	}
	u.Bias = init.Init(inputWidth, rng)

	return u
}

// Sum returns the weighted sum of the inputs, plus the bias. Sum panics if the number of inputs
// does not match the number of weights; Activate checks first.
func (u *Unit) Sum(inputs []float64) float64 {
	return floats.Dot(inputs, u.Weights) + u.Bias
}

// Activate returns the output of the Unit for the given inputs. It has no side effects.
func (u *Unit) Activate(inputs []float64, act Activation) (float64, error) {
	if len(inputs) != len(u.Weights) {
		return 0, DimensionMismatchError{len(u.Weights), len(inputs), "unit inputs"}
	}

	return act.Apply(u.Sum(inputs))
}

func (u *Unit) clone() *Unit {
	return &Unit{
		Weights: append([]float64(nil), u.Weights...),
		Bias:    u.Bias,
	}
}
