package models

import "github.com/google/uuid"

// RecordID is a stable identifier for a FileRecord or ResultRecord. It stays
// valid across removals of other records.
type RecordID string

// NewRecordID returns a fresh random identifier.
func NewRecordID() RecordID {
	return RecordID(uuid.NewString())
}

func (id RecordID) String() string {
	return string(id)
}

// SourceFile references the binary payload of an upload. The record holds the
// reference only; the bytes stay wherever Path points.
type SourceFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
	Path        string `json:"path,omitempty"`
}

// FileRecord is one pending upload awaiting submission.
type FileRecord struct {
	ID              RecordID     `json:"id"`
	Source          SourceFile   `json:"source"`
	Category        CategoryCode `json:"category"`
	AdditionalNames string       `json:"additionalNames"`
	BusinessContent string       `json:"businessContent,omitempty"`
	Purpose         string       `json:"purpose,omitempty"`
	Remark          string       `json:"remark"`
}

// HasTripDetails reports whether both business trip fields are filled in.
func (r FileRecord) HasTripDetails() bool {
	return r.BusinessContent != "" && r.Purpose != ""
}

// ResultRecord is one row of the post-submission ledger, produced by the OCR
// service and then edited by the user.
type ResultRecord struct {
	ID       RecordID     `json:"id,omitempty"`
	FileName string       `json:"fileName"`
	Category CategoryCode `json:"category"`
	Remark   string       `json:"remark"`
	Purpose  string       `json:"purpose"`
	Merchant string       `json:"merchant,omitempty"`
	Amount   string       `json:"amount"`
	// SupplyAmount and VATAmount are read when Amount is missing or zero.
	SupplyAmount    string `json:"supplyAmount,omitempty"`
	VATAmount       string `json:"vatAmount,omitempty"`
	IssueDate       string `json:"issueDate"`
	PayDate         string `json:"payDate"`
	BusinessContent string `json:"businessContent,omitempty"`
	BusinessPurpose string `json:"businessPurpose,omitempty"`
}
