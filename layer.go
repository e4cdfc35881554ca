package perceptron

import (
	"github.com/pkg/errors"
)

// Layer is an ordered group of Units that all take the same inputs and share an Activation. The
// order of the Units is the order of the Layer's output values.
type Layer struct {
	Units      []*Unit
	Activation Activation
}

// Size returns the number of Units in the Layer, which is the number of values it outputs.
func (l *Layer) Size() int {
	return len(l.Units)
}

// InputSize returns the number of inputs expected by each Unit in the Layer. InputSize returns 0
// for a Layer without Units.
func (l *Layer) InputSize() int {
	if len(l.Units) == 0 {
		return 0
	}

	return len(l.Units[0].Weights)
}

// Evaluate returns the output of every Unit, in order, for the given inputs.
func (l *Layer) Evaluate(inputs []float64) ([]float64, error) {
	if !l.Activation.Valid() {
		return nil, UnsupportedActivationError{Activation: l.Activation}
	}

	values := make([]float64, len(l.Units))
	for i, u := range l.Units {
		v, err := u.Activate(inputs, l.Activation)
		if err != nil {
			return nil, errors.Wrapf(err, "Couldn't evaluate unit %d", i)
		}

		values[i] = v
	}

	return values, nil
}

func (l *Layer) clone() *Layer {
	c := &Layer{Units: make([]*Unit, len(l.Units)), Activation: l.Activation}
	for i, u := range l.Units {
		c.Units[i] = u.clone()
	}

	return c
}
