package perceptron

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestMinMax(t *testing.T) {
	rows := [][]float64{
		{18.5, 150, 3},
		{25.0, 180, 3},
		{30.2, 165, 3},
	}

	m, err := FitMinMax(rows)
	if err != nil {
		t.Fatal(err)
	}

	scaled, err := m.Scale(rows[1])
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{(25 - 18.5) / (30.2 - 18.5), 1, 0}
	for i := range want {
		if math.Abs(scaled[i]-want[i]) > 1e-12 {
			t.Errorf("column %d scaled to %v, want %v", i, scaled[i], want[i])
		}
	}

	for _, row := range rows {
		s, _ := m.Scale(row)
		back, err := m.Unscale(s)
		if err != nil {
			t.Fatal(err)
		}

		for i := range row {
			if math.Abs(back[i]-row[i]) > 1e-9 {
				t.Errorf("round trip of %v gave %v", row, back)
				break
			}
		}
	}
}

func TestMinMaxErrors(t *testing.T) {
	if _, err := FitMinMax(nil); errors.Cause(err) != ErrNoData {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	if _, err := FitMinMax([][]float64{{1, 2}, {3}}); !IsDimensionMismatch(err) {
		t.Errorf("expected DimensionMismatchError, got %v", err)
	}

	m, _ := FitMinMax([][]float64{{0, 0}, {1, 1}})
	if _, err := m.Scale([]float64{1}); !IsDimensionMismatch(err) {
		t.Errorf("expected DimensionMismatchError, got %v", err)
	}
}

func TestScaleData(t *testing.T) {
	data := []Datum{
		{Inputs: []float64{0, 10}, Outputs: []float64{1}},
		{Inputs: []float64{5, 20}, Outputs: []float64{0}},
	}

	in, _ := FitMinMax([][]float64{data[0].Inputs, data[1].Inputs})
	scaled, err := ScaleData(data, &in, nil)
	if err != nil {
		t.Fatal(err)
	}

	if scaled[1].Inputs[0] != 1 || scaled[1].Inputs[1] != 1 || scaled[0].Inputs[0] != 0 {
		t.Errorf("scaled inputs %v, %v", scaled[0].Inputs, scaled[1].Inputs)
	}
	if scaled[0].Outputs[0] != 1 {
		t.Errorf("outputs changed: %v", scaled[0].Outputs)
	}
	if data[1].Inputs[0] != 5 {
		t.Error("ScaleData modified its input")
	}
}
