package initializers

import (
	"math"
	"math/rand"
	"testing"
)

func TestUniformRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	u := Uniform().Range(0.5, -0.25)

	for i := 0; i < 1000; i++ {
		v := u.Init(3, rng)
		if v < -0.25 || v >= 0.5 {
			t.Fatalf("value %v outside [-0.25, 0.5)", v)
		}
		if v == 0 {
			t.Fatal("got exact zero")
		}
	}
}

func TestFanInBound(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	f := FanIn()

	for _, n := range []int{1, 2, 5, 100} {
		b := f.Bound(n)
		if want := math.Sqrt(6 / float64(n+1)); b != want {
			t.Errorf("Bound(%d) = %v, want %v", n, b, want)
		}

		for i := 0; i < 500; i++ {
			if v := f.Init(n, rng); math.Abs(v) > b {
				t.Fatalf("value %v outside bound %v for %d inputs", v, b, n)
			}
		}
	}

	if b := FanIn().Factor(2).Bound(1); b != 1 {
		t.Errorf("Factor(2).Bound(1) = %v, want 1", b)
	}
}

func TestTruncNormal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tn := TruncNormal().Mean(1).SD(0.5).Trunc(1)

	for i := 0; i < 1000; i++ {
		if v := tn.Init(4, rng); v < 0.5 || v > 1.5 {
			t.Fatalf("value %v outside one SD of the mean", v)
		}
	}
}

func TestScaledNormal(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	for _, n := range []int{1, 16, 400} {
		limit := defaultTrunc * math.Sqrt(2/float64(n))
		for i := 0; i < 500; i++ {
			if v := He().Init(n, rng); math.Abs(v) > limit {
				t.Fatalf("He value %v for %d inputs beyond %v", v, n, limit)
			}
		}
	}
}

func TestNormalStatistics(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n := Normal().Mean(3).SD(2)

	const count = 20000
	var sum, sq float64
	for i := 0; i < count; i++ {
		v := n.Init(1, rng)
		sum += v
		sq += v * v
	}

	mean := sum / count
	sd := math.Sqrt(sq/count - mean*mean)
	if math.Abs(mean-3) > 0.1 || math.Abs(sd-2) > 0.1 {
		t.Errorf("mean %v, sd %v; want about 3 and 2", mean, sd)
	}
}

func TestSeeded(t *testing.T) {
	for _, name := range []string{"uniform", "normal", "fan-in", "lecun", "he"} {
		init, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}

		a, b := rand.New(rand.NewSource(9)), rand.New(rand.NewSource(9))
		for i := 0; i < 10; i++ {
			if x, y := init.Init(3, a), init.Init(3, b); x != y {
				t.Fatalf("%s: %v != %v with the same seed", name, x, y)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup(" Xavier "); err != nil {
		t.Errorf("Lookup(xavier): %v", err)
	}
	if _, err := Lookup("orthogonal"); err == nil {
		t.Error("expected error for unknown initializer")
	}
}

func TestSetDefault(t *testing.T) {
	old := defaultValue["uniform-upper"]
	defer func() { defaultValue["uniform-upper"] = old }()

	if err := SetDefault("uniform-upper", 0.1); err != nil {
		t.Fatal(err)
	}
	if u := Uniform(); u.upper != 0.1 {
		t.Errorf("upper = %v after SetDefault", u.upper)
	}

	if err := SetDefault("no-such-value", 1); err == nil {
		t.Error("expected error for unknown name")
	}
	if err := SetDefault("normal-sd", math.NaN()); err == nil {
		t.Error("expected error for NaN")
	}
}
