package perceptron

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func seeded(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func TestNewDimensions(t *testing.T) {
	shapes := [][]int{
		{1, 1},
		{2, 3, 1},
		{4, 8, 8, 3},
		{10, 1, 10},
	}

	for _, sizes := range shapes {
		net, err := New(sizes, seeded(1))
		if err != nil {
			t.Fatalf("New(%v): %v", sizes, err)
		}

		if err = net.Validate(); err != nil {
			t.Errorf("New(%v) produced invalid network: %v", sizes, err)
		}

		width := sizes[0]
		for i, l := range net.Layers() {
			if l.Size() != sizes[i+1] {
				t.Errorf("%v: layer %d has %d units, want %d", sizes, i, l.Size(), sizes[i+1])
			}
			for j, u := range l.Units {
				if len(u.Weights) != width {
					t.Errorf("%v: layer %d unit %d has %d weights, want %d", sizes, i, j, len(u.Weights), width)
				}
			}
			width = l.Size()
		}

		got := net.Sizes()
		for i := range sizes {
			if got[i] != sizes[i] {
				t.Errorf("Sizes() = %v, want %v", got, sizes)
				break
			}
		}
	}
}

func TestNewInvalidArchitecture(t *testing.T) {
	for _, sizes := range [][]int{nil, {3}, {2, 0, 1}, {-1, 2}} {
		if _, err := New(sizes); errors.Cause(err) != ErrInvalidArchitecture {
			t.Errorf("New(%v): expected ErrInvalidArchitecture, got %v", sizes, err)
		}
	}
}

func TestNewActivations(t *testing.T) {
	net, err := New([]int{2, 3, 1}, WithActivations(Tanh))
	if err != nil {
		t.Fatal(err)
	}
	for i, a := range net.Activations() {
		if a != Tanh {
			t.Errorf("layer %d: got %v, want tanh", i, a)
		}
	}

	if _, err = New([]int{2, 3, 1}, WithActivations(Tanh, Sigmoid, Tanh)); !IsDimensionMismatch(err) {
		t.Errorf("expected DimensionMismatchError for too many activations, got %v", err)
	}
	if _, err = New([]int{2, 3, 1}, WithActivations(Tanh, Activation(9))); !IsUnsupportedActivation(err) {
		t.Errorf("expected UnsupportedActivationError, got %v", err)
	}
}

func TestClassifier(t *testing.T) {
	net, err := Classifier([]int{3, 5, 4, 2}, seeded(2))
	if err != nil {
		t.Fatal(err)
	}

	want := []Activation{Tanh, Tanh, Sigmoid}
	for i, a := range net.Activations() {
		if a != want[i] {
			t.Errorf("layer %d: got %v, want %v", i, a, want[i])
		}
	}
}

func TestSeededConstruction(t *testing.T) {
	a, _ := New([]int{3, 4, 2}, seeded(42))
	b, _ := New([]int{3, 4, 2}, seeded(42))

	for i, l := range a.Layers() {
		for j, u := range l.Units {
			v := b.Layers()[i].Units[j]
			if u.Bias != v.Bias {
				t.Fatalf("layer %d unit %d: biases differ with the same seed", i, j)
			}
			for k := range u.Weights {
				if u.Weights[k] != v.Weights[k] {
					t.Fatalf("layer %d unit %d: weights differ with the same seed", i, j)
				}
			}
		}
	}
}

func TestForward(t *testing.T) {
	net, err := New([]int{2, 1})
	if err != nil {
		t.Fatal(err)
	}

	u := net.Layers()[0].Units[0]
	u.Weights = []float64{1, 2}
	u.Bias = -1

	trace, err := net.Forward([]float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}

	if len(trace) != 2 {
		t.Fatalf("trace has %d entries, want 2", len(trace))
	}

	want := 1 / (1 + math.Exp(-2))
	if got := trace.Output()[0]; math.Abs(got-want) > 1e-12 {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestForwardDimensionMismatch(t *testing.T) {
	net, _ := New([]int{3, 2, 1}, seeded(1))

	for _, in := range [][]float64{nil, {1}, {1, 2}, {1, 2, 3, 4}} {
		if _, err := net.Forward(in); !IsDimensionMismatch(err) {
			t.Errorf("Forward(%v): expected DimensionMismatchError, got %v", in, err)
		}
		if _, err := net.Predict(in); !IsDimensionMismatch(err) {
			t.Errorf("Predict(%v): expected DimensionMismatchError, got %v", in, err)
		}
	}
}

func TestForwardOutputRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sig, _ := New([]int{4, 6, 3}, seeded(4))
	tanh, _ := New([]int{4, 6, 3}, seeded(4), WithActivations(Tanh))

	for i := 0; i < 100; i++ {
		in := make([]float64, 4)
		for j := range in {
			in[j] = rng.NormFloat64() * 10
		}

		outs, err := sig.Predict(in)
		if err != nil {
			t.Fatal(err)
		}
		for _, o := range outs {
			if o <= 0 || o >= 1 {
				t.Fatalf("sigmoid output %v out of range for input %v", o, in)
			}
		}

		outs, err = tanh.Predict(in)
		if err != nil {
			t.Fatal(err)
		}
		for _, o := range outs {
			if o <= -1 || o >= 1 {
				t.Fatalf("tanh output %v out of range for input %v", o, in)
			}
		}
	}
}

func TestForwardIsPure(t *testing.T) {
	net, _ := New([]int{2, 3, 1}, seeded(5))
	in := []float64{0.25, -0.75}

	first, _ := net.Predict(in)
	in[0] = 100
	second, _ := net.Predict([]float64{0.25, -0.75})

	if first[0] != second[0] {
		t.Errorf("repeated Predict gave %v then %v", first[0], second[0])
	}
}

func TestUnsupportedActivationInForward(t *testing.T) {
	net, _ := New([]int{2, 2, 1}, seeded(6))
	net.Layers()[1].Activation = Activation(200)

	if _, err := net.Predict([]float64{0, 1}); !IsUnsupportedActivation(err) {
		t.Errorf("expected UnsupportedActivationError, got %v", err)
	}
	if err := net.Validate(); !IsUnsupportedActivation(err) {
		t.Errorf("Validate: expected UnsupportedActivationError, got %v", err)
	}
}

func TestClone(t *testing.T) {
	net, _ := New([]int{2, 2, 1}, seeded(7))
	c := net.Clone()

	c.Layers()[0].Units[0].Weights[0] += 1
	if net.Layers()[0].Units[0].Weights[0] == c.Layers()[0].Units[0].Weights[0] {
		t.Error("changing the clone changed the original")
	}
}
