package hyperparams

import (
	"math"
	"testing"
)

func TestConstant(t *testing.T) {
	c := Constant(0.3)
	for _, e := range []int{0, 1, 1000} {
		if v := c.Value(e); v != 0.3 {
			t.Errorf("Value(%d) = %v", e, v)
		}
	}
}

func TestStep(t *testing.T) {
	s := Step(0.3).Add(9000, 0.05).Add(5000, 0.1)

	tests := []struct {
		epoch int
		want  float64
	}{
		{0, 0.3},
		{4999, 0.3},
		{5000, 0.1},
		{8999, 0.1},
		{9000, 0.05},
		{100000, 0.05},
	}

	for _, test := range tests {
		if v := s.Value(test.epoch); v != test.want {
			t.Errorf("Value(%d) = %v, want %v", test.epoch, v, test.want)
		}
	}
}

func TestCheck(t *testing.T) {
	for _, v := range []float64{0.001, 0.3, 10} {
		if err := Check(v); err != nil {
			t.Errorf("Check(%v): %v", v, err)
		}
	}
	for _, v := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		if err := Check(v); err == nil {
			t.Errorf("Check(%v): expected error", v)
		}
	}
}
