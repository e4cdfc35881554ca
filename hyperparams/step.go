package hyperparams

import (
	"sort"
)

type step struct {
	Epoch int
	Val   float64
}

type stepper []step

// Step returns a HyperParameter that starts at base and changes to new values at the epochs given
// by Add.
//
//		lr := hyperparams.Step(0.3).Add(5000, 0.1).Add(9000, 0.05)
func Step(base float64) *stepper {
	s := stepper([]step{{0, base}})
	return &s
}

// Add adds a step to the HyperParameter. Steps may be added in any order.
func (s *stepper) Add(epoch int, value float64) *stepper {
	*s = append(*s, step{epoch, value})
	sort.SliceStable(*s, func(i, j int) bool {
		return (*s)[i].Epoch < (*s)[j].Epoch
	})

	return s
}

// Value is the implementation of perceptron.HyperParameter
func (s *stepper) Value(epoch int) float64 {
	sl := []step(*s)
	for i := 1; i < len(sl); i++ {
		if sl[i].Epoch > epoch {
			return sl[i-1].Val
		}
	}

	return sl[len(sl)-1].Val
}
