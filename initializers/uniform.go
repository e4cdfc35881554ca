package initializers

import (
	"math"
	"math/rand"
)

type uniform struct {
	lower, upper float64
}

// Uniform returns an Initializer that draws uniformly from within a range, which can be set by
// Range. The defaults ("uniform-lower" and "uniform-upper") can be set by SetDefault.
func Uniform() *uniform {
	return &uniform{defaultValue["uniform-lower"], defaultValue["uniform-upper"]}
}

// Range sets the range of a Uniform Initializer, returning the same Initializer
func (u *uniform) Range(lower, upper float64) *uniform {
	if lower > upper {
		lower, upper = upper, lower
	}

	u.lower = lower
	u.upper = upper
	return u
}

// Init is the implementation of perceptron.Initializer
func (u *uniform) Init(inputWidth int, rng *rand.Rand) float64 {
	return draw(rng, u.lower, u.upper)
}

// draw returns a non-zero value in [lower, upper). Exact zeros are discarded so that no weight
// starts out disconnected. If the range is only zero, zero is returned.
func draw(rng *rand.Rand, lower, upper float64) float64 {
	if lower == 0 && upper == 0 {
		return 0
	}

	for {
		w := rng.Float64()*(upper-lower) + lower
		if w != 0 {
			return w
		}
	}
}

type fanIn struct {
	factor float64
}

// FanIn returns an Initializer that draws uniformly from [-b, b), where b = sqrt(factor / (n+1))
// for a Unit with n inputs. The +1 counts the bias. The factor defaults to 6 ("fanin-factor"),
// which gives the Xavier/Glorot bound for a single output.
//
// FanIn is the default Initializer for perceptron.New.
func FanIn() *fanIn {
	return &fanIn{defaultValue["fanin-factor"]}
}

// Factor sets the scaling factor of the bound.
func (f *fanIn) Factor(factor float64) *fanIn {
	f.factor = factor
	return f
}

// Bound returns the magnitude of the range that values are drawn from, for a Unit with the given
// number of inputs.
func (f *fanIn) Bound(inputWidth int) float64 {
	return math.Sqrt(f.factor / float64(inputWidth+1))
}

// Init is the implementation of perceptron.Initializer
func (f *fanIn) Init(inputWidth int, rng *rand.Rand) float64 {
	b := f.Bound(inputWidth)
	return draw(rng, -b, b)
}
