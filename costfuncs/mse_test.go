package costfuncs

import (
	"math"
	"testing"
)

func TestCosts(t *testing.T) {
	outs := []float64{0.5, 0.0, 1.0}
	targets := []float64{1.0, 0.5, 1.0}

	if c := SquaredError().Cost(outs, targets); math.Abs(c-0.5) > 1e-12 {
		t.Errorf("SquaredError = %v, want 0.5", c)
	}
	if c := MSE().Cost(outs, targets); math.Abs(c-0.5/3) > 1e-12 {
		t.Errorf("MSE = %v, want %v", c, 0.5/3)
	}
	if c := L2().Cost(nil, nil); c != 0 {
		t.Errorf("MSE of nothing = %v", c)
	}
}
