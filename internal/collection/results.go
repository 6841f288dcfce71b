package collection

import (
	"fmt"

	"github.com/gphunter1004/automation/internal/ledgererror"
	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/remark"
)

// Results returns a snapshot of the result records in order.
func (m *Manager) Results() []models.ResultRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.ResultRecord, len(m.store.results))
	for i, r := range m.store.results {
		out[i] = *r
	}
	return out
}

// Result returns a snapshot of one result record.
func (m *Manager) Result(id models.RecordID) (models.ResultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.resultLocked(id)
	if err != nil {
		return models.ResultRecord{}, err
	}
	return *r, nil
}

// SyncResults regenerates the remarks of result records from the current user
// name and returns how many changed. A record is left alone when the user name
// or its issue date is empty, when its remark was typed by hand, or when it is
// a business trip.
func (m *Manager) SyncResults() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncResultsLocked()
}

func (m *Manager) syncResultsLocked() int {
	updated := 0
	for _, r := range m.store.results {
		if m.syncResultLocked(r) {
			updated++
		}
	}
	return updated
}

func (m *Manager) syncResultLocked(r *models.ResultRecord) bool {
	if m.userName == "" || r.IssueDate == "" {
		return false
	}
	if r.Remark != "" && !remark.IsAutoGenerated(r.Remark) {
		m.logger.Debug("Keeping manually edited remark",
			logging.Field{Key: logging.FieldRecordID, Value: r.ID},
			logging.Field{Key: logging.FieldRemark, Value: r.Remark})
		return false
	}
	if r.Category.IsBusinessTrip() {
		return false
	}

	names := remark.JoinNames(m.userName, m.submittedNames[r.FileName])
	next := remark.GenerateDefault(r.IssueDate, names, r.Category)
	if next == r.Remark {
		return false
	}
	r.Remark = next
	return true
}

// SetResultCategory changes a result's category and regenerates its remark
// when allowed.
func (m *Manager) SetResultCategory(id models.RecordID, category models.CategoryCode) error {
	if !category.IsValid() {
		return fmt.Errorf("%w: %s", ledgererror.ErrUnknownCategory, category)
	}
	return m.editResult(id, func(r *models.ResultRecord) bool {
		r.Category = category
		return true
	})
}

// SetResultIssueDate changes a result's issue date and regenerates its remark
// when allowed.
func (m *Manager) SetResultIssueDate(id models.RecordID, issueDate string) error {
	return m.editResult(id, func(r *models.ResultRecord) bool {
		r.IssueDate = issueDate
		return true
	})
}

// SetResultRemark replaces a result's remark. A remark that does not look
// generated is kept by later synchronization.
func (m *Manager) SetResultRemark(id models.RecordID, text string) error {
	return m.editResult(id, func(r *models.ResultRecord) bool {
		r.Remark = text
		return false
	})
}

// SetResultPurpose replaces a result's purpose.
func (m *Manager) SetResultPurpose(id models.RecordID, purpose string) error {
	return m.editResult(id, func(r *models.ResultRecord) bool {
		r.Purpose = purpose
		return false
	})
}

// SetResultAmount replaces a result's amount.
func (m *Manager) SetResultAmount(id models.RecordID, amount string) error {
	return m.editResult(id, func(r *models.ResultRecord) bool {
		r.Amount = amount
		return false
	})
}

// editResult applies edit to a result record and synchronizes its remark when
// edit reports that a remark input changed.
func (m *Manager) editResult(id models.RecordID, edit func(r *models.ResultRecord) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.resultLocked(id)
	if err != nil {
		return err
	}
	if edit(r) && m.syncResultLocked(r) {
		m.logger.Debug("Result remark regenerated",
			logging.Field{Key: logging.FieldRecordID, Value: id},
			logging.Field{Key: logging.FieldRemark, Value: r.Remark})
	}
	return nil
}

func (m *Manager) resultLocked(id models.RecordID) (*models.ResultRecord, error) {
	r := m.store.findResult(id)
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ledgererror.ErrRecordNotFound, id)
	}
	return r, nil
}
