// Package store provides the places that a perceptron.Network can keep its training samples and
// snapshots: in memory, in an SQLite database, or in a single JSON file.
package store

import (
	"sync"

	"github.com/pkg/errors"

	pc "github.com/sharnoff/perceptron"
)

// Memory is a SampleLog and SnapshotStore that keeps everything in memory. Records are stored in
// their encoded form, so that Memory behaves like the durable stores. It is safe for concurrent
// use.
type Memory struct {
	mux      sync.Mutex
	samples  []memRecord
	lastID   int64
	snapshot []byte
}

type memRecord struct {
	id   int64
	data []byte
}

// NewMemory returns an empty Memory store
func NewMemory() *Memory {
	return new(Memory)
}

// AppendSample is the implementation of perceptron.SampleLog
func (m *Memory) AppendSample(d pc.Datum) (int64, error) {
	data, err := pc.EncodeDatum(d)
	if err != nil {
		return 0, err
	}

	m.mux.Lock()
	defer m.mux.Unlock()

	m.lastID++
	m.samples = append(m.samples, memRecord{m.lastID, data})
	return m.lastID, nil
}

// AppendRaw stores data as-is, without checking that it decodes. It returns the identifier given to
// the record.
func (m *Memory) AppendRaw(data []byte) int64 {
	m.mux.Lock()
	defer m.mux.Unlock()

	m.lastID++
	m.samples = append(m.samples, memRecord{m.lastID, append([]byte(nil), data...)})
	return m.lastID
}

// LatestSample is the implementation of perceptron.SampleLog
func (m *Memory) LatestSample() (pc.SampleRecord, bool, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	if len(m.samples) == 0 {
		return pc.SampleRecord{}, false, nil
	}

	return decodeRecord(m.samples[len(m.samples)-1]), true, nil
}

// Samples is the implementation of perceptron.SampleLog
func (m *Memory) Samples() ([]pc.SampleRecord, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	records := make([]pc.SampleRecord, len(m.samples))
	for i, r := range m.samples {
		records[i] = decodeRecord(r)
	}

	return records, nil
}

// Len returns the number of stored samples
func (m *Memory) Len() int {
	m.mux.Lock()
	defer m.mux.Unlock()

	return len(m.samples)
}

// SaveSnapshot is the implementation of perceptron.SnapshotStore
func (m *Memory) SaveSnapshot(s pc.Snapshot) error {
	data, err := pc.EncodeSnapshot(s)
	if err != nil {
		return err
	}

	m.mux.Lock()
	m.snapshot = data
	m.mux.Unlock()

	return nil
}

// LoadSnapshot is the implementation of perceptron.SnapshotStore
func (m *Memory) LoadSnapshot() (pc.Snapshot, error) {
	m.mux.Lock()
	data := m.snapshot
	m.mux.Unlock()

	if data == nil {
		return pc.Snapshot{}, errors.Wrapf(pc.ErrNoSnapshot, "Memory store")
	}

	return pc.DecodeSnapshot(data)
}

func decodeRecord(r memRecord) pc.SampleRecord {
	d, err := pc.DecodeDatum(r.id, r.data)
	return pc.SampleRecord{ID: r.id, Datum: d, Err: err}
}
