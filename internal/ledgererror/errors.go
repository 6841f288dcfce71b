// Package ledgererror defines the error types reported by the ledger components.
package ledgererror

import (
	"errors"
	"fmt"
)

// RejectionKind classifies why an input file was not added.
type RejectionKind string

// Rejection kinds.
const (
	KindUnsupportedType RejectionKind = "unsupported_type"
	KindTooLarge        RejectionKind = "too_large"
	KindCapacity        RejectionKind = "capacity"
	KindDuplicate       RejectionKind = "duplicate"
)

// RejectionError reports a file (or a whole batch, for capacity) that was not
// added to a collection. It never aborts the rest of the batch.
type RejectionError struct {
	FileName string
	Kind     RejectionKind
	Reason   string
}

func (e *RejectionError) Error() string {
	if e.FileName == "" {
		return fmt.Sprintf("batch rejected (%s): %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("file %s rejected (%s): %s", e.FileName, e.Kind, e.Reason)
}

// RequiredFieldError reports a missing value that blocks a submission.
// FileName is empty for top-level form fields.
type RequiredFieldError struct {
	FileName string
	Field    string
}

func (e *RequiredFieldError) Error() string {
	if e.FileName == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s: %s is required", e.FileName, e.Field)
}

// SubmissionError wraps a failure reported by the submission service.
type SubmissionError struct {
	Partition string
	Err       error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s submission failed: %v", e.Partition, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

var (
	// ErrSubmissionInFlight is returned when a submission is attempted while another is outstanding.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	// ErrCollectionFrozen is returned when the primary collection is mutated after submission.
	ErrCollectionFrozen = errors.New("primary collection is frozen after submission")
	// ErrNotReviewing is returned when supplementary operations are used before any results exist.
	ErrNotReviewing = errors.New("supplementary uploads require submitted results")
	// ErrRecordNotFound is returned for an unknown record ID.
	ErrRecordNotFound = errors.New("record not found")
	// ErrEmptyCollection is returned when submitting a collection with no records.
	ErrEmptyCollection = errors.New("no files to submit")
	// ErrUnknownCategory is returned for a category code outside the fixed set.
	ErrUnknownCategory = errors.New("unknown category code")
	// ErrUnknownField is returned when editing a field that does not exist.
	ErrUnknownField = errors.New("unknown field")
	// ErrSubmissionDiscarded is returned when the collections were reset while a submission was outstanding.
	ErrSubmissionDiscarded = errors.New("submission discarded after reset")
)

// IsRejection reports whether err is a RejectionError of the given kind.
func IsRejection(err error, kind RejectionKind) bool {
	var rej *RejectionError
	return errors.As(err, &rej) && rej.Kind == kind
}
