// Package errors defines the error types shared by the pipeline stages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common pipeline failures
var (
	// ErrMissingInput means a stage's required input file does not exist;
	// the prior stage has not been run.
	ErrMissingInput = errors.New("required input file missing")

	// ErrDuplicateKey means a dataset violated its uniqueness invariant
	// (duplicate firm-year, duplicate ticker-year, duplicate NAICS-3).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrRowCountChanged means a left join fanned out and changed the row
	// count of the panel.
	ErrRowCountChanged = errors.New("merge changed row count")

	// ErrQualityCheck means a hard data quality check failed on the
	// merged dataset.
	ErrQualityCheck = errors.New("data quality check failed")

	// ErrNotFound means the remote resource returned 404. For companyfacts
	// this is expected for firms without XBRL filings and is not fatal.
	ErrNotFound = errors.New("resource not found")

	// ErrNoObservations means a regression sample was empty after dropping
	// rows with missing values.
	ErrNoObservations = errors.New("no usable observations")
)

// StageError wraps an error with the stage and operation that produced it
type StageError struct {
	Stage string
	Op    string
	Err   error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StageError) Unwrap() error {
	return e.Err
}

// Wrap creates a StageError around err; returns nil when err is nil
func Wrap(stage, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Op: op, Err: err}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
