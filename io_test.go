package perceptron

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func sameOutputs(t *testing.T, a, b *Network, inputs [][]float64) {
	t.Helper()

	for _, in := range inputs {
		x, err := a.Predict(in)
		if err != nil {
			t.Fatal(err)
		}
		y, err := b.Predict(in)
		if err != nil {
			t.Fatal(err)
		}

		for i := range x {
			if x[i] != y[i] {
				t.Errorf("output %d for %v: %v != %v", i, in, x[i], y[i])
			}
		}
	}
}

var probes = [][]float64{{0, 0, 0}, {0.1, -0.2, 0.3}, {1, 1, 1}, {-7, 3.5, 0.001}}

func TestSnapshotRoundTrip(t *testing.T) {
	net, _ := Classifier([]int{3, 5, 2}, seeded(21))

	restored, err := FromSnapshot(net.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	sameOutputs(t, net, restored, probes)

	// the restored network must not share memory with the original
	restored.Layers()[0].Units[0].Weights[0] += 1
	if net.Layers()[0].Units[0].Weights[0] == restored.Layers()[0].Units[0].Weights[0] {
		t.Error("restored network shares weights with the original")
	}
}

func TestEncodeDecode(t *testing.T) {
	net, _ := New([]int{3, 4, 4, 2}, seeded(22), WithActivations(Tanh, Sigmoid, Tanh))

	var buf bytes.Buffer
	if err := net.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	sameOutputs(t, net, decoded, probes)

	acts := decoded.Activations()
	if acts[0] != Tanh || acts[1] != Sigmoid || acts[2] != Tanh {
		t.Errorf("decoded activations %v", acts)
	}
}

func TestSaveLoad(t *testing.T) {
	net, _ := New([]int{3, 2, 1}, seeded(23))
	path := filepath.Join(t.TempDir(), "nets", "small.json")

	if err := net.Save(path, false); err != nil {
		t.Fatal(err)
	}
	if err := net.Save(path, false); err == nil {
		t.Error("expected error saving over an existing file without overwrite")
	}
	if err := net.Save(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	sameOutputs(t, net, loaded, probes)

	// nothing else should be left in the directory
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("found %d files after saving, want 1", len(entries))
	}

	if _, err = Load(filepath.Join(t.TempDir(), "missing.json")); !IsPersistence(err) {
		t.Errorf("expected PersistenceError for missing file, got %v", err)
	}
}

func TestDecodeSnapshotErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(error) bool
	}{
		{"garbage", `not json`, IsMalformedRecord},
		{"truncated", `{"sizes":[2,1],"layers":[`, IsMalformedRecord},
		{"unknown activation", `{"sizes":[1,1],"layers":[{"activation":"relu","units":[{"weights":[1],"bias":0}]}]}`, IsUnsupportedActivation},
		{"too few layers", `{"sizes":[1,1,1],"layers":[{"activation":"tanh","units":[{"weights":[1],"bias":0}]}]}`, IsDimensionMismatch},
		{"too many units", `{"sizes":[1,1],"layers":[{"activation":"tanh","units":[{"weights":[1],"bias":0},{"weights":[1],"bias":0}]}]}`, IsDimensionMismatch},
		{"short weights", `{"sizes":[2,1],"layers":[{"activation":"sigmoid","units":[{"weights":[1],"bias":0}]}]}`, IsDimensionMismatch},
		{"no sizes", `{"sizes":[],"layers":[]}`, func(err error) bool { return errors.Cause(err) == ErrInvalidArchitecture }},
		{"no activation", `{"sizes":[1,1],"layers":[{"units":[{"weights":[0.5],"bias":0}]}]}`, IsMalformedRecord},
		{"null activation", `{"sizes":[1,1],"layers":[{"activation":null,"units":[{"weights":[0.5],"bias":0}]}]}`, IsMalformedRecord},
		{"unknown field", `{"sizes":[1,1],"extra":1,"layers":[{"activation":"tanh","units":[{"weights":[1],"bias":0}]}]}`, IsMalformedRecord},
		{"unknown layer field", `{"sizes":[1,1],"layers":[{"activation":"tanh","units":[{"weights":[1],"bias":0,"scale":2}]}]}`, IsMalformedRecord},
		{"trailing data", `{"sizes":[1,1],"layers":[{"activation":"tanh","units":[{"weights":[1],"bias":0}]}]} {}`, IsMalformedRecord},
	}

	for _, test := range tests {
		_, err := DecodeSnapshot([]byte(test.data))
		if err == nil {
			t.Errorf("%s: expected error", test.name)
		} else if !test.check(err) {
			t.Errorf("%s: wrong kind of error: %v", test.name, err)
		}
	}
}

func TestDecodeSnapshotExplicitActivation(t *testing.T) {
	s, err := DecodeSnapshot([]byte(`{"sizes":[1,1],"layers":[{"activation":"tanh","units":[{"weights":[0.5],"bias":0}]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Layers[0].Activation != Tanh {
		t.Errorf("decoded activation %v, want tanh", s.Layers[0].Activation)
	}
}

func TestDecodeDatum(t *testing.T) {
	d, err := DecodeDatum(4, []byte(`{"inputs":[1,2],"outputs":[0.5]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Inputs) != 2 || d.Outputs[0] != 0.5 {
		t.Errorf("decoded %+v", d)
	}

	for _, bad := range []string{`{`, `{"inputs":[1]}`, `{"inputs":[1],"outputs":[1],"extra":true}`, `[1,2]`} {
		_, err := DecodeDatum(9, []byte(bad))

		var m MalformedRecordError
		if !errors.As(err, &m) {
			t.Errorf("%s: expected MalformedRecordError, got %v", bad, err)
		} else if m.ID != 9 {
			t.Errorf("%s: error has id %d, want 9", bad, m.ID)
		}
	}
}

func TestRestoreErrors(t *testing.T) {
	if _, err := Restore(nil); errors.Cause(err) != ErrNilStore {
		t.Errorf("expected ErrNilStore, got %v", err)
	}
	if _, err := Restore(new(recorder)); errors.Cause(err) != ErrNoSnapshot {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}

	rec := &recorder{snapshots: []Snapshot{{Sizes: []int{2, 1}, Layers: []LayerSnapshot{{Units: []UnitSnapshot{{Weights: []float64{1}}}}}}}}
	if _, err := Restore(rec); !IsDimensionMismatch(err) {
		t.Errorf("expected DimensionMismatchError, got %v", err)
	}
}

func TestReload(t *testing.T) {
	rec := new(recorder)
	for _, d := range xorData() {
		rec.AppendSample(d)
	}

	r, err := Reload(rec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Found != 4 || r.Valid != 4 || r.Skipped != 0 {
		t.Errorf("got report %+v", r)
	}
	if r.Latest.ID != 4 || r.Latest.Datum.Inputs[0] != 1 || r.Latest.Datum.Inputs[1] != 1 {
		t.Errorf("latest record is %+v", r.Latest)
	}

	if _, err = Reload(nil, nil); errors.Cause(err) != ErrNilStore {
		t.Errorf("expected ErrNilStore, got %v", err)
	}
}
