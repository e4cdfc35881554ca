package initializers

import (
	"math"
	"math/rand"
)

type normal struct {
	µ, σ float64
}

// Normal returns an Initializer that draws from a normal distribution. The center and standard
// deviation can be set by Mean and SD, respectively.
//
// Default centers and standard deviations can be set by SetDefault for "normal-mean" and
// "normal-sd". Together, they default to the standard normal distribution.
func Normal() *normal {
	return &normal{defaultValue["normal-mean"], defaultValue["normal-sd"]}
}

// SD sets the value of the standard deviation of the normal distribution.
func (n *normal) SD(sd float64) *normal {
	n.σ = sd
	return n
}

// Mean sets the center of the normal distribution.
func (n *normal) Mean(mean float64) *normal {
	n.µ = mean
	return n
}

// Init is the implementation of perceptron.Initializer
func (n *normal) Init(inputWidth int, rng *rand.Rand) float64 {
	return rng.NormFloat64()*n.σ + n.µ
}

type truncNormal struct {
	*normal
	trunc float64
}

const defaultTrunc float64 = 2.0

// TruncNormal returns an Initializer that draws from a truncated normal distribution. The
// distribution is truncated at 2 standard deviations, which can be changed by Trunc.
func TruncNormal() *truncNormal {
	return &truncNormal{Normal(), defaultTrunc}
}

// SD sets the standard deviation before truncation, returning the same Initializer.
func (t *truncNormal) SD(sd float64) *truncNormal {
	t.normal.SD(sd)
	return t
}

// Mean sets the center of the distribution, returning the same Initializer.
func (t *truncNormal) Mean(mean float64) *truncNormal {
	t.normal.Mean(mean)
	return t
}

// Trunc sets the number of standard deviations to keep on either side. Trunc will panic if given
// sds <= 0.
func (t *truncNormal) Trunc(sds float64) *truncNormal {
	if sds <= 0 {
		panic("given number of standard deviations to truncate after is <= 0")
	}

	t.trunc = sds
	return t
}

// Init is the implementation of perceptron.Initializer
func (t *truncNormal) Init(inputWidth int, rng *rand.Rand) float64 {
	for {
		v := rng.NormFloat64()
		if v < -t.trunc || v > t.trunc {
			continue
		}

		return v*t.σ + t.µ
	}
}

type scaledNormal struct {
	factor float64
}

// LeCun returns an Initializer that draws from a truncated normal distribution with a standard
// deviation of sqrt(1/n), for a Unit with n inputs.
func LeCun() scaledNormal {
	return scaledNormal{1}
}

// He returns an Initializer that draws from a truncated normal distribution with a standard
// deviation of sqrt(2/n), for a Unit with n inputs.
func He() scaledNormal {
	return scaledNormal{2}
}

// Init is the implementation of perceptron.Initializer
func (s scaledNormal) Init(inputWidth int, rng *rand.Rand) float64 {
	if inputWidth < 1 {
		inputWidth = 1
	}

	t := &truncNormal{&normal{0, math.Sqrt(s.factor / float64(inputWidth))}, defaultTrunc}
	return t.Init(inputWidth, rng)
}
