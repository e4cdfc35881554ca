package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	pc "github.com/sharnoff/perceptron"
)

// File is a SnapshotStore that keeps a single snapshot as JSON in the file at Path. Saving replaces
// the previous snapshot.
type File struct {
	Path string
}

// NewFile returns a File store for the given path. The file need not exist yet.
func NewFile(path string) *File {
	return &File{Path: path}
}

// SaveSnapshot is the implementation of perceptron.SnapshotStore. The snapshot is written to a
// temporary file in the same directory first, and then renamed over Path.
func (f *File) SaveSnapshot(s pc.Snapshot) error {
	data, err := pc.EncodeSnapshot(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.Path)
	if err = os.MkdirAll(dir, 0700); err != nil {
		return pc.PersistenceError{Op: "save snapshot", Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".tmp*")
	if err != nil {
		return pc.PersistenceError{Op: "save snapshot", Err: err}
	}

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}

	if err == nil {
		err = os.Rename(tmp.Name(), f.Path)
	}

	if err != nil {
		os.Remove(tmp.Name())
		return pc.PersistenceError{Op: "save snapshot", Err: errors.Wrapf(err, "Couldn't write %s", f.Path)}
	}

	return nil
}

// LoadSnapshot is the implementation of perceptron.SnapshotStore
func (f *File) LoadSnapshot() (pc.Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return pc.Snapshot{}, errors.Wrapf(pc.ErrNoSnapshot, "File store %s", f.Path)
	} else if err != nil {
		return pc.Snapshot{}, pc.PersistenceError{Op: "load snapshot", Err: err}
	}

	return pc.DecodeSnapshot(data)
}
