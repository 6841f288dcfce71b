package collection

import (
	"fmt"
	"strings"

	"github.com/gphunter1004/automation/internal/ledgererror"
)

// Partition names one of the pending file collections.
type Partition string

const (
	// Primary holds the first batch, before any submission.
	Primary Partition = "primary"
	// Supplementary holds a follow-up batch added while reviewing results.
	Supplementary Partition = "supplementary"

	// resultsOwner marks dedup keys held by submitted result records.
	resultsOwner Partition = "results"
)

// ParsePartition converts a command-line value into a Partition.
func ParsePartition(s string) (Partition, error) {
	switch Partition(strings.ToLower(strings.TrimSpace(s))) {
	case Primary:
		return Primary, nil
	case Supplementary:
		return Supplementary, nil
	}
	return "", fmt.Errorf("unknown partition %q: use %q or %q", s, Primary, Supplementary)
}

func (p Partition) String() string {
	return string(p)
}

// State is the stage of the upload flow.
type State string

const (
	// StateCollecting means nothing has been submitted yet.
	StateCollecting State = "collecting"
	// StateReviewing means results exist and the primary collection is frozen.
	StateReviewing State = "reviewing"
	// StateExtendingReview means a supplementary batch is being collected while reviewing.
	StateExtendingReview State = "extending_review"
)

// Field is an editable text field of a pending record.
type Field string

// Editable fields.
const (
	FieldAdditionalNames Field = "additional_names"
	FieldBusinessContent Field = "business_content"
	FieldPurpose         Field = "purpose"
)

// ParseField converts a field name into a Field.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldAdditionalNames, FieldBusinessContent, FieldPurpose:
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ledgererror.ErrUnknownField, s)
}
