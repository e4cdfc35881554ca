// Package hyperparams provides schedules for hyperparameters, such as the learning rate, that may
// change from one epoch to the next. Each type implements perceptron.HyperParameter.
package hyperparams

import (
	"math"

	"github.com/pkg/errors"
)

type constant float64

// Constant returns a HyperParameter that always has the given value.
func Constant(value float64) *constant {
	c := constant(value)
	return &c
}

// Value is the implementation of perceptron.HyperParameter
func (c *constant) Value(epoch int) float64 {
	return float64(*c)
}

// Check returns an error if the value would be unusable as a learning rate.
func Check(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Errorf("Value is invalid (%v)", value)
	} else if value <= 0 {
		return errors.Errorf("Value must be > 0 (%v)", value)
	}

	return nil
}
