package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	pc "github.com/sharnoff/perceptron"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_data (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run        TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	data       TEXT NOT NULL
);`

// SQLite is a SampleLog and SnapshotStore backed by an SQLite database file. Samples are kept in
// the table "training_data" and snapshots in "snapshots"; neither table is ever updated in place.
// The most recent record of each is the one with the greatest id.
//
// Every SQLite value tags the snapshots it saves with its own run identifier, so that snapshots
// from separate training runs sharing a database can be told apart.
type SQLite struct {
	db     *sql.DB
	run    string
	logger *zap.Logger
}

// OpenSQLite opens (or creates) the database at path and makes sure that its tables exist. The
// logger may be nil.
func OpenSQLite(path string, logger *zap.Logger) (*SQLite, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, pc.PersistenceError{Op: "open", Err: errors.Wrapf(err, "Couldn't open database %s", path)}
	}

	// sqlite allows only one writer at a time
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, pc.PersistenceError{Op: "open", Err: errors.Wrapf(err, "Couldn't create tables in %s", path)}
	}

	s := &SQLite{db: db, run: uuid.NewString(), logger: logger}
	logger.Debug("opened sqlite store", zap.String("path", path), zap.String("run", s.run))
	return s, nil
}

// Run returns the identifier that this store tags its snapshots with
func (s *SQLite) Run() string {
	return s.run
}

// Close closes the underlying database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// AppendSample is the implementation of perceptron.SampleLog
func (s *SQLite) AppendSample(d pc.Datum) (int64, error) {
	data, err := pc.EncodeDatum(d)
	if err != nil {
		return 0, err
	}

	return s.AppendRaw(data)
}

// AppendRaw stores data in the sample log as-is, without checking that it decodes.
func (s *SQLite) AppendRaw(data []byte) (int64, error) {
	res, err := s.db.Exec("INSERT INTO training_data (data) VALUES (?)", string(data))
	if err != nil {
		return 0, pc.PersistenceError{Op: "append sample", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, pc.PersistenceError{Op: "append sample", Err: err}
	}

	return id, nil
}

// LatestSample is the implementation of perceptron.SampleLog
func (s *SQLite) LatestSample() (pc.SampleRecord, bool, error) {
	var id int64
	var data string

	err := s.db.QueryRow("SELECT id, data FROM training_data ORDER BY id DESC LIMIT 1").Scan(&id, &data)
	if err == sql.ErrNoRows {
		return pc.SampleRecord{}, false, nil
	} else if err != nil {
		return pc.SampleRecord{}, false, pc.PersistenceError{Op: "read latest sample", Err: err}
	}

	d, err := pc.DecodeDatum(id, []byte(data))
	return pc.SampleRecord{ID: id, Datum: d, Err: err}, true, nil
}

// Samples is the implementation of perceptron.SampleLog
func (s *SQLite) Samples() ([]pc.SampleRecord, error) {
	rows, err := s.db.Query("SELECT id, data FROM training_data ORDER BY id ASC")
	if err != nil {
		return nil, pc.PersistenceError{Op: "read samples", Err: err}
	}
	defer rows.Close()

	var records []pc.SampleRecord
	for rows.Next() {
		var id int64
		var data string
		if err = rows.Scan(&id, &data); err != nil {
			return nil, pc.PersistenceError{Op: "read samples", Err: err}
		}

		d, err := pc.DecodeDatum(id, []byte(data))
		records = append(records, pc.SampleRecord{ID: id, Datum: d, Err: err})
	}

	if err = rows.Err(); err != nil {
		return nil, pc.PersistenceError{Op: "read samples", Err: err}
	}

	return records, nil
}

// CountSamples returns the number of records in the sample log
func (s *SQLite) CountSamples() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM training_data").Scan(&n); err != nil {
		return 0, pc.PersistenceError{Op: "count samples", Err: err}
	}

	return n, nil
}

// ClearSamples removes every record from the sample log. Identifiers keep increasing afterwards.
func (s *SQLite) ClearSamples() error {
	if _, err := s.db.Exec("DELETE FROM training_data"); err != nil {
		return pc.PersistenceError{Op: "clear samples", Err: err}
	}

	return nil
}

// SaveSnapshot is the implementation of perceptron.SnapshotStore. Earlier snapshots are kept, but
// are superseded by this one.
func (s *SQLite) SaveSnapshot(snap pc.Snapshot) error {
	data, err := pc.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("INSERT INTO snapshots (run, created_at, data) VALUES (?, ?, ?)",
		s.run, time.Now().Unix(), string(data))
	if err != nil {
		return pc.PersistenceError{Op: "save snapshot", Err: err}
	}

	return nil
}

// LoadSnapshot is the implementation of perceptron.SnapshotStore. It returns the most recent
// snapshot from any run.
func (s *SQLite) LoadSnapshot() (pc.Snapshot, error) {
	var id int64
	var run, data string

	err := s.db.QueryRow("SELECT id, run, data FROM snapshots ORDER BY id DESC LIMIT 1").Scan(&id, &run, &data)
	if err == sql.ErrNoRows {
		return pc.Snapshot{}, errors.Wrapf(pc.ErrNoSnapshot, "SQLite store")
	} else if err != nil {
		return pc.Snapshot{}, pc.PersistenceError{Op: "load snapshot", Err: err}
	}

	snap, err := pc.DecodeSnapshot([]byte(data))
	if err != nil {
		var m pc.MalformedRecordError
		if errors.As(err, &m) {
			m.ID = id
			return pc.Snapshot{}, m
		}

		return pc.Snapshot{}, errors.Wrapf(err, "Snapshot %d", id)
	}

	s.logger.Debug("loaded snapshot", zap.Int64("id", id), zap.String("run", run))
	return snap, nil
}
