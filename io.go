package perceptron

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Snapshot is a full copy of a Network's weights and biases, sufficient to reconstruct it exactly.
// Layers and Units are kept in the same order as in the Network.
type Snapshot struct {
	// Sizes is the list of widths that the Network was constructed with
	Sizes  []int           `json:"sizes"`
	Layers []LayerSnapshot `json:"layers"`
}

// LayerSnapshot is the stored form of a single Layer
type LayerSnapshot struct {
	Activation Activation     `json:"activation"`
	Units      []UnitSnapshot `json:"units"`
}

// UnmarshalJSON is the implementation of json.Unmarshaler. The activation must be given
// explicitly; a layer without one is rejected rather than read as the zero Activation.
func (l *LayerSnapshot) UnmarshalJSON(data []byte) error {
	var ls struct {
		Activation *Activation    `json:"activation"`
		Units      []UnitSnapshot `json:"units"`
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ls); err != nil {
		return err
	} else if ls.Activation == nil {
		return errors.Errorf("layer snapshot is missing its activation")
	}

	*l = LayerSnapshot{Activation: *ls.Activation, Units: ls.Units}
	return nil
}

// UnitSnapshot is the stored form of a single Unit
type UnitSnapshot struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Snapshot returns a copy of the Network's current state. The Snapshot shares no memory with the
// Network.
func (net *Network) Snapshot() Snapshot {
	s := Snapshot{
		Sizes:  net.Sizes(),
		Layers: make([]LayerSnapshot, len(net.layers)),
	}

	for i, l := range net.layers {
		ls := LayerSnapshot{Activation: l.Activation, Units: make([]UnitSnapshot, len(l.Units))}
		for j, u := range l.Units {
			ls.Units[j] = UnitSnapshot{
				Weights: append([]float64(nil), u.Weights...),
				Bias:    u.Bias,
			}
		}

		s.Layers[i] = ls
	}

	return s
}

// Validate checks that the shapes in the Snapshot agree with its declared Sizes: one Layer for
// each size after the first, with as many Units as that size and as many weights per Unit as the
// size before it.
func (s Snapshot) Validate() error {
	if len(s.Sizes) < 2 {
		return ErrInvalidArchitecture
	}
	for _, size := range s.Sizes {
		if size <= 0 {
			return ErrInvalidArchitecture
		}
	}

	if len(s.Layers) != len(s.Sizes)-1 {
		return DimensionMismatchError{len(s.Sizes) - 1, len(s.Layers), "snapshot layers"}
	}

	for i, l := range s.Layers {
		if !l.Activation.Valid() {
			return errors.Wrapf(UnsupportedActivationError{Activation: l.Activation}, "Snapshot layer %d", i)
		} else if len(l.Units) != s.Sizes[i+1] {
			return errors.Wrapf(DimensionMismatchError{s.Sizes[i+1], len(l.Units), "snapshot units"}, "Snapshot layer %d", i)
		}

		for j, u := range l.Units {
			if len(u.Weights) != s.Sizes[i] {
				return errors.Wrapf(DimensionMismatchError{s.Sizes[i], len(u.Weights), "snapshot weights"},
					"Snapshot layer %d, unit %d", i, j)
			}
		}
	}

	return nil
}

// FromSnapshot reconstructs a Network from a Snapshot, after checking it with Validate. The
// Network shares no memory with the Snapshot.
func FromSnapshot(s Snapshot) (*Network, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Can't restore network from snapshot")
	}

	net := &Network{inputSize: s.Sizes[0], layers: make([]*Layer, len(s.Layers))}
	for i, ls := range s.Layers {
		l := &Layer{Activation: ls.Activation, Units: make([]*Unit, len(ls.Units))}
		for j, us := range ls.Units {
			l.Units[j] = &Unit{Weights: append([]float64(nil), us.Weights...), Bias: us.Bias}
		}

		net.layers[i] = l
	}

	return net, nil
}

// EncodeSnapshot returns the JSON encoding of the Snapshot
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't encode snapshot")
	}

	return b, nil
}

// DecodeSnapshot parses a Snapshot previously produced by EncodeSnapshot. Data that is not a valid
// encoding gives MalformedRecordError; a Snapshot with inconsistent shapes gives
// DimensionMismatchError. Unknown fields and layers without an activation are malformed.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, MalformedRecordError{Err: err}
	} else if _, err := dec.Token(); err != io.EOF {
		return Snapshot{}, MalformedRecordError{Err: errors.Errorf("unexpected data after snapshot")}
	}

	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}

	return s, nil
}

// EncodeDatum returns the JSON encoding of a training sample, as stored by a SampleLog
func EncodeDatum(d Datum) ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't encode sample")
	}

	return b, nil
}

// DecodeDatum parses a sample encoded by EncodeDatum. Any failure gives MalformedRecordError
// with the given id.
func DecodeDatum(id int64, data []byte) (Datum, error) {
	var d Datum

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Datum{}, MalformedRecordError{ID: id, Err: err}
	} else if d.Inputs == nil || d.Outputs == nil {
		return Datum{}, MalformedRecordError{ID: id, Err: errors.Errorf("sample is missing inputs or outputs")}
	}

	return d, nil
}

// Encode writes the Network's Snapshot to w, as JSON
func (net *Network) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(net.Snapshot()); err != nil {
		return errors.Wrapf(err, "Couldn't encode network")
	}

	return nil
}

// Decode reads a Network written by Encode.
func Decode(r io.Reader) (*Network, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't read network")
	}

	s, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}

	return FromSnapshot(s)
}

// Save writes the network to the file at path, creating any missing directories (with permissions
// 0700). If overwrite is false and the file already exists, Save returns an error.
//
// The file is first written in full to a temporary file in the same directory, and then moved into
// place, so that an interrupted Save never leaves a partial network behind.
func (net *Network) Save(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.Errorf("Can't save network, file %q already exists, and overwrite is not enabled", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return PersistenceError{"save", errors.Wrapf(err, "Couldn't make directory to save network")}
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return PersistenceError{"save", errors.Wrapf(err, "Couldn't create temporary file in %s", dir)}
	}

	finishedSafely := false
	defer func() {
		if !finishedSafely {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = net.Encode(f); err != nil {
		return PersistenceError{"save", err}
	}
	if err = f.Close(); err != nil {
		return PersistenceError{"save", errors.Wrapf(err, "Couldn't close %s", f.Name())}
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return PersistenceError{"save", errors.Wrapf(err, "Couldn't move network into place at %s", path)}
	}

	finishedSafely = true
	return nil
}

// Load reads a network previously written with Save.
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, PersistenceError{"load", errors.Wrapf(err, "Can't load network")}
	}
	defer f.Close()

	net, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load network from %s", path)
	}

	return net, nil
}

// ReloadReport summarizes the contents of a SampleLog.
type ReloadReport struct {
	// Found is the total number of records in the log. Found = Valid + Skipped.
	Found   int
	Valid   int
	Skipped int

	// Latest is the valid record with the greatest identifier. It is only meaningful if Valid > 0.
	Latest SampleRecord
}

// Reload reads every record in the log, checking that each can be decoded. The log is advisory:
// malformed records are logged and skipped, and the Network is not changed. Only a failure to read
// the log at all is returned as an error.
func Reload(log SampleLog, logger *zap.Logger) (ReloadReport, error) {
	if log == nil {
		return ReloadReport{}, ErrNilStore
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	records, err := log.Samples()
	if err != nil {
		return ReloadReport{}, asPersistence("read samples", err)
	}

	var r ReloadReport
	for _, rec := range records {
		r.Found++
		if rec.Err != nil {
			r.Skipped++
			logger.Warn("skipping malformed sample", zap.Int64("id", rec.ID), zap.Error(rec.Err))
			continue
		}

		r.Valid++
		if rec.ID >= r.Latest.ID {
			r.Latest = rec
		}
	}

	logger.Info("reloaded sample log", zap.Int("found", r.Found), zap.Int("valid", r.Valid), zap.Int("skipped", r.Skipped))
	return r, nil
}

// Restore reconstructs the Network from the most recent Snapshot in the store. Unlike Reload, a
// missing or malformed Snapshot is an error, because there is no other state to fall back on.
func Restore(store SnapshotStore) (*Network, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	s, err := store.LoadSnapshot()
	if err != nil {
		cause := errors.Cause(err)
		if cause == ErrNoSnapshot || cause == ErrInvalidArchitecture ||
			IsMalformedRecord(err) || IsDimensionMismatch(err) || IsUnsupportedActivation(err) {
			return nil, errors.Wrapf(err, "Can't restore network")
		}

		return nil, asPersistence("load snapshot", err)
	}

	return FromSnapshot(s)
}

// asPersistence wraps err as a PersistenceError, unless it already carries a more specific kind.
func asPersistence(op string, err error) error {
	if IsPersistence(err) || IsMalformedRecord(err) {
		return err
	}

	return PersistenceError{op, err}
}
