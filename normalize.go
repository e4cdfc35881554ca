package perceptron

import (
	"gonum.org/v1/gonum/floats"
)

// MinMax scales each column of a dataset to [0, 1], using the smallest and largest values seen in
// that column when it was fitted. Columns where every value is the same are scaled to 0.
type MinMax struct {
	Min []float64 `json:"min" yaml:"min"`
	Max []float64 `json:"max" yaml:"max"`
}

// FitMinMax returns the MinMax for the given rows. Every row must have the same length.
func FitMinMax(rows [][]float64) (MinMax, error) {
	if len(rows) == 0 {
		return MinMax{}, ErrNoData
	}

	width := len(rows[0])
	col := make([]float64, len(rows))
	m := MinMax{Min: make([]float64, width), Max: make([]float64, width)}

	for c := 0; c < width; c++ {
		for r, row := range rows {
			if len(row) != width {
				return MinMax{}, DimensionMismatchError{width, len(row), "row"}
			}
			col[r] = row[c]
		}

		m.Min[c] = floats.Min(col)
		m.Max[c] = floats.Max(col)
	}

	return m, nil
}

// Scale returns a scaled copy of the values.
func (m MinMax) Scale(values []float64) ([]float64, error) {
	if len(values) != len(m.Min) {
		return nil, DimensionMismatchError{len(m.Min), len(values), "values to scale"}
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if span := m.Max[i] - m.Min[i]; span != 0 {
			out[i] = (v - m.Min[i]) / span
		}
	}

	return out, nil
}

// Unscale reverses Scale. Columns that were scaled to 0 come back as their single value.
func (m MinMax) Unscale(values []float64) ([]float64, error) {
	if len(values) != len(m.Min) {
		return nil, DimensionMismatchError{len(m.Min), len(values), "values to unscale"}
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v*(m.Max[i]-m.Min[i]) + m.Min[i]
	}

	return out, nil
}

// ScaleData returns a copy of the dataset with inputs scaled by in and outputs scaled by out.
// Either may be nil to leave that side unchanged.
func ScaleData(data []Datum, in, out *MinMax) ([]Datum, error) {
	scaled := make([]Datum, len(data))
	for i, d := range data {
		scaled[i] = Datum{Inputs: d.Inputs, Outputs: d.Outputs}

		var err error
		if in != nil {
			if scaled[i].Inputs, err = in.Scale(d.Inputs); err != nil {
				return nil, err
			}
		}
		if out != nil {
			if scaled[i].Outputs, err = out.Scale(d.Outputs); err != nil {
				return nil, err
			}
		}
	}

	return scaled, nil
}
