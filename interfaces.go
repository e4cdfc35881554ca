package perceptron

import "math/rand"

// Initializer sets the starting values of a Unit's weights and bias. Implementations can be found
// in the subpackage "initializers".
type Initializer interface {
	// returns a single starting value for a Unit with the given number of inputs, drawing from
	// the given source. Init is called once per weight and once for the bias.
	//
	// the source is always provided by the Network, so that initialization is reproducible
	Init(int, *rand.Rand) float64
	// Init(inputWidth int, rng *rand.Rand) float64
}

// HyperParameter gives the value of a hyperparameter (e.g. the learning rate) that may change over
// the course of training. Implementations can be found in the subpackage "hyperparams".
type HyperParameter interface {
	// arguments: the current epoch, starting at 0
	Value(int) float64
	// Value(epoch int) float64
}

// CostFunction measures the error of a single sample. Implementations can be found in the
// subpackage "costfuncs".
type CostFunction interface {
	// can assume that both slices have the same length
	//
	// arguments: actual values, target values
	Cost([]float64, []float64) float64
	// Cost(outputs, targets []float64) float64
}

// SampleLog is an append-only record of the training samples that a Network has been given. The
// log is advisory: it is used to report what was seen, not to resume training.
type SampleLog interface {
	// appends the sample, returning its identifier. Identifiers are strictly increasing.
	AppendSample(Datum) (int64, error)

	// returns the sample with the greatest identifier. The boolean is false if the log is empty.
	LatestSample() (SampleRecord, bool, error)

	// returns every record, in order of identifier. Records that fail to decode are returned with
	// a non-nil Err, not omitted.
	Samples() ([]SampleRecord, error)
}

// SnapshotStore durably keeps the most recent Snapshot of a Network. Saving a Snapshot supersedes
// the previous one.
type SnapshotStore interface {
	SaveSnapshot(Snapshot) error

	// returns ErrNoSnapshot (possibly wrapped) if nothing has been saved
	LoadSnapshot() (Snapshot, error)
}

// SampleRecord is a single entry of a SampleLog
type SampleRecord struct {
	ID    int64
	Datum Datum

	// Err is non-nil if the stored record could not be decoded. It will be of type
	// MalformedRecordError.
	Err error
}
