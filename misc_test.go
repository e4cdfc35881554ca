package perceptron

import (
	"testing"
)

func TestCorrect(t *testing.T) {
	if !CorrectRound([]float64{0.2, 0.7}, []float64{0, 1}) {
		t.Error("CorrectRound rejected close outputs")
	}
	if CorrectRound([]float64{0.6, 0.7}, []float64{0, 1}) {
		t.Error("CorrectRound accepted a wrong output")
	}

	if !CorrectHighest([]float64{0.1, 0.4, 0.3}, OneHot(1, 3)) {
		t.Error("CorrectHighest rejected the right class")
	}
	if CorrectHighest([]float64{0.5, 0.4, 0.3}, OneHot(1, 3)) {
		t.Error("CorrectHighest accepted the wrong class")
	}
}

func TestArgmax(t *testing.T) {
	tests := []struct {
		in   []float64
		want int
	}{
		{nil, -1},
		{[]float64{3}, 0},
		{[]float64{1, 3, 2}, 1},
		{[]float64{2, 2, 1}, 0},
	}

	for _, test := range tests {
		if got := Argmax(test.in); got != test.want {
			t.Errorf("Argmax(%v) = %d, want %d", test.in, got, test.want)
		}
	}
}

func TestEvery(t *testing.T) {
	f := Every(3)
	for e, want := range []bool{true, false, false, true, false, false, true} {
		if f(e) != want {
			t.Errorf("Every(3)(%d) = %v", e, !want)
		}
	}

	if Every(0)(0) {
		t.Error("Every(0) should never be true")
	}
}
