package perceptron

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned.
var (
	ErrInvalidArchitecture = Error{"Network must have an input width and at least one layer, all with size > 0"}
	ErrNoData              = Error{"Training data is empty"}
	ErrNegativeEpochs      = Error{"Number of epochs is negative"}
	ErrNilStore            = Error{"Store is nil"}
	ErrNoSnapshot          = Error{"No snapshot has been stored"}
)

// UnsupportedActivationError is returned whenever an Activation outside of the supported set is
// used. It is never retried: activations are part of the architecture, not transient state.
type UnsupportedActivationError struct {
	Activation Activation

	// Name is set instead when the activation was requested by name
	Name string
}

func (err UnsupportedActivationError) Error() string {
	if err.Name != "" {
		return fmt.Sprintf("Unsupported activation %q", err.Name)
	}

	return fmt.Sprintf("Unsupported activation (%d)", uint8(err.Activation))
}

// DimensionMismatchError documents a slice whose length does not match what the Network expects,
// either for an input vector or for the shapes in a stored snapshot.
type DimensionMismatchError struct {
	Expected, Given int
	What            string
}

func (err DimensionMismatchError) Error() string {
	return fmt.Sprintf("Dimension mismatch for %s: expected %d, given %d", err.What, err.Expected, err.Given)
}

// PersistenceError indicates that a store could not be reached or refused a write. The underlying
// error is available through Cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (err PersistenceError) Error() string {
	return fmt.Sprintf("Persistence failure during %s: %v", err.Op, err.Err)
}

// Cause allows errors.Cause to reach the underlying store error.
func (err PersistenceError) Cause() error {
	return err.Err
}

func (err PersistenceError) Unwrap() error {
	return err.Err
}

// MalformedRecordError indicates that a stored sample or snapshot could not be decoded.
type MalformedRecordError struct {
	ID  int64
	Err error
}

func (err MalformedRecordError) Error() string {
	if err.ID == 0 {
		return fmt.Sprintf("Malformed record: %v", err.Err)
	}

	return fmt.Sprintf("Malformed record (id: %d): %v", err.ID, err.Err)
}

func (err MalformedRecordError) Cause() error {
	return err.Err
}

func (err MalformedRecordError) Unwrap() error {
	return err.Err
}

// IsUnsupportedActivation reports whether err is, or wraps, an UnsupportedActivationError.
func IsUnsupportedActivation(err error) bool {
	var u UnsupportedActivationError
	return errors.As(err, &u)
}

// IsDimensionMismatch reports whether err is, or wraps, a DimensionMismatchError.
func IsDimensionMismatch(err error) bool {
	var d DimensionMismatchError
	return errors.As(err, &d)
}

// IsPersistence reports whether err is, or wraps, a PersistenceError.
func IsPersistence(err error) bool {
	var p PersistenceError
	return errors.As(err, &p)
}

// IsMalformedRecord reports whether err is, or wraps, a MalformedRecordError.
func IsMalformedRecord(err error) bool {
	var m MalformedRecordError
	return errors.As(err, &m)
}
