package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no route or compliance data exists for a request
var ErrNotFound = errors.New("not found")

// ErrNoBaseline is returned by comparisons when no route is flagged as baseline
var ErrNoBaseline = fmt.Errorf("baseline route: %w", ErrNotFound)

// NoComplianceRecordError reports a pool member without compliance data
type NoComplianceRecordError struct {
	ShipID string
	Year   int
}

func (e *NoComplianceRecordError) Error() string {
	return fmt.Sprintf("no compliance record for ship %s in %d", e.ShipID, e.Year)
}

func (e *NoComplianceRecordError) Unwrap() error {
	return ErrNotFound
}

// ValidationError rejects a pool before anything is persisted
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StorageFault wraps a failure of the underlying store. The unit of work has
// been rolled back by the time the caller sees it.
type StorageFault struct {
	Op  string
	Err error
}

func (e *StorageFault) Error() string {
	return fmt.Sprintf("storage fault during %s: %v", e.Op, e.Err)
}

func (e *StorageFault) Unwrap() error {
	return e.Err
}

// storageFault wraps err unless it already carries a domain meaning
func storageFault(op string, err error) error {
	if err == nil {
		return nil
	}
	var fault *StorageFault
	var validation *ValidationError
	if errors.As(err, &fault) || errors.As(err, &validation) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &StorageFault{Op: op, Err: err}
}
