// Package collection holds the pending receipt files of a ledger and the OCR
// results they produce. It enforces upload capacity and deduplication, builds
// each record from its filename, and keeps generated remarks in step with the
// user name, categories and trip details.
package collection

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gphunter1004/automation/internal/ledgererror"
	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/remark"
	"github.com/gphunter1004/automation/internal/textutils"
	"github.com/gphunter1004/automation/internal/validation"
)

// Classifier assigns a category to a filename.
type Classifier interface {
	Classify(filename string) models.CategoryCode
}

// AddResult reports the outcome of AddFiles.
type AddResult struct {
	// Added holds the IDs of the new records in insertion order.
	Added []models.RecordID
	// Rejected holds one error per refused file, or a single capacity error
	// for the whole batch.
	Rejected []*ledgererror.RejectionError
	// Skipped holds files dropped silently as duplicates.
	Skipped []string
}

// AddedCount returns the number of files added.
func (r AddResult) AddedCount() int { return len(r.Added) }

// RejectedCount returns the number of rejection messages.
func (r AddResult) RejectedCount() int { return len(r.Rejected) }

// Manager owns the primary and supplementary collections and the result
// records. All mutation goes through its methods; it is safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	store      *recordStore
	classifier Classifier
	rules      validation.FileRules
	maxFiles   int
	logger     logging.Logger
	now        func() time.Time

	userName  string
	submitted bool

	// inFlight is the partition of the outstanding submission, empty when none.
	inFlight Partition
	// generation is bumped by Reset so a late submission response is dropped.
	generation uint64
	// submittedNames maps a submitted file name to the additional names sent with it.
	submittedNames map[string]string
}

// NewManager creates a Manager. maxFiles bounds the primary collection; the
// supplementary collection and the results share twice that amount.
func NewManager(classifier Classifier, rules validation.FileRules, maxFiles int, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if maxFiles < 1 {
		maxFiles = validation.DefaultMaxFiles
	}
	return &Manager{
		store:          newRecordStore(),
		classifier:     classifier,
		rules:          rules,
		maxFiles:       maxFiles,
		logger:         logger,
		now:            time.Now,
		submittedNames: make(map[string]string),
	}
}

// SetClock replaces the clock used for payment dates.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now != nil {
		m.now = now
	}
}

// State returns the current stage of the upload flow.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() State {
	switch {
	case !m.submitted:
		return StateCollecting
	case m.store.count(Supplementary) > 0:
		return StateExtendingReview
	default:
		return StateReviewing
	}
}

// UserName returns the user name remarks are currently generated with.
func (m *Manager) UserName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userName
}

// AddFiles adds files to the target collection. The batch is refused as a
// whole when it would exceed capacity. Otherwise each file is validated and
// deduplicated on its own, and refusals do not stop the remaining files.
func (m *Manager) AddFiles(files []models.SourceFile, target Partition) (AddResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result AddResult
	if err := m.checkWritableLocked(target); err != nil {
		return result, err
	}
	if len(files) == 0 {
		return result, nil
	}

	log := m.logger.WithField(logging.FieldPartition, target)

	if limit, current := m.capacityLocked(target); current+len(files) > limit {
		rej := &ledgererror.RejectionError{
			Kind:   ledgererror.KindCapacity,
			Reason: capacityReason(target, limit, current),
		}
		log.Warn("File batch rejected",
			logging.Field{Key: logging.FieldCount, Value: len(files)},
			logging.Field{Key: logging.FieldReason, Value: rej.Reason})
		result.Rejected = append(result.Rejected, rej)
		return result, nil
	}

	for _, f := range files {
		if err := m.rules.ValidateFile(f); err != nil {
			var rej *ledgererror.RejectionError
			if !errors.As(err, &rej) {
				rej = &ledgererror.RejectionError{FileName: f.Name, Reason: err.Error()}
			}
			log.Warn("File rejected",
				logging.Field{Key: logging.FieldFileName, Value: f.Name},
				logging.Field{Key: logging.FieldReason, Value: rej.Reason})
			result.Rejected = append(result.Rejected, rej)
			continue
		}

		if owner, dup := m.store.owner(f); dup {
			if target == Supplementary && owner != Supplementary {
				rej := &ledgererror.RejectionError{
					FileName: f.Name,
					Kind:     ledgererror.KindDuplicate,
					Reason:   "file was already processed or selected",
				}
				log.Warn("Duplicate file rejected", logging.Field{Key: logging.FieldFileName, Value: f.Name})
				result.Rejected = append(result.Rejected, rej)
			} else {
				log.Debug("Duplicate file skipped", logging.Field{Key: logging.FieldFileName, Value: f.Name})
				result.Skipped = append(result.Skipped, f.Name)
			}
			continue
		}

		rec := m.newRecordLocked(f)
		m.store.add(target, rec)
		result.Added = append(result.Added, rec.ID)
		log.Debug("File added",
			logging.Field{Key: logging.FieldRecordID, Value: rec.ID},
			logging.Field{Key: logging.FieldFileName, Value: f.Name},
			logging.Field{Key: logging.FieldCategory, Value: rec.Category})
	}

	log.Info("Files processed",
		logging.Field{Key: "added", Value: len(result.Added)},
		logging.Field{Key: "rejected", Value: len(result.Rejected)},
		logging.Field{Key: "skipped", Value: len(result.Skipped)})
	return result, nil
}

// capacityLocked returns the limit for the target and the number of entries
// counted against it.
func (m *Manager) capacityLocked(target Partition) (limit, current int) {
	if target == Supplementary {
		return 2 * m.maxFiles, len(m.store.results) + m.store.count(Supplementary)
	}
	return m.maxFiles, m.store.count(Primary)
}

func capacityReason(target Partition, limit, current int) string {
	if target == Supplementary {
		return fmt.Sprintf("too many files in total: at most %d including %d already present", limit, current)
	}
	return fmt.Sprintf("at most %d files can be selected, %d already selected", limit, current)
}

func (m *Manager) newRecordLocked(f models.SourceFile) *models.FileRecord {
	rec := &models.FileRecord{
		ID:              models.NewRecordID(),
		Source:          f,
		Category:        m.classifier.Classify(f.Name),
		AdditionalNames: textutils.ExtractNames(f.Name),
	}
	if rec.Category.IsBusinessTrip() {
		rec.Purpose = textutils.ExtractBusinessPurpose(f.Name)
	}
	rec.Remark = remark.ForFileRecord(*rec, m.userName)
	return rec
}

// ChangeCategory sets a record's category and regenerates its remark.
// Switching to the business trip category re-derives the purpose from the
// filename, replacing any purpose typed earlier.
func (m *Manager) ChangeCategory(id models.RecordID, category models.CategoryCode) error {
	if !category.IsValid() {
		return fmt.Errorf("%w: %s", ledgererror.ErrUnknownCategory, category)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.writableRecordLocked(id)
	if err != nil {
		return err
	}

	rec.Category = category
	if category.IsBusinessTrip() {
		rec.Purpose = textutils.ExtractBusinessPurpose(rec.Source.Name)
	}
	m.refreshRemarkLocked(rec)

	m.logger.Debug("Record category changed",
		logging.Field{Key: logging.FieldRecordID, Value: id},
		logging.Field{Key: logging.FieldCategory, Value: category})
	return nil
}

// EditField sets one editable field of a record and regenerates its remark.
func (m *Manager) EditField(id models.RecordID, field Field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.writableRecordLocked(id)
	if err != nil {
		return err
	}

	switch field {
	case FieldAdditionalNames:
		rec.AdditionalNames = value
	case FieldBusinessContent:
		rec.BusinessContent = value
	case FieldPurpose:
		rec.Purpose = value
	default:
		return fmt.Errorf("%w: %s", ledgererror.ErrUnknownField, field)
	}
	m.refreshRemarkLocked(rec)

	m.logger.Debug("Record field edited",
		logging.Field{Key: logging.FieldRecordID, Value: id},
		logging.Field{Key: "field", Value: field})
	return nil
}

// OnUserNameChanged regenerates remarks for the new user name. An empty name
// is stored but leaves every remark as it is. Pending
// business trip records missing content or purpose keep their remark, and
// result records follow the rules of SyncResults. Calling it again with the
// same name changes nothing.
func (m *Manager) OnUserNameChanged(userName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setUserNameLocked(userName)
}

func (m *Manager) setUserNameLocked(userName string) {
	m.userName = userName
	if userName == "" {
		m.logger.Debug("User name cleared, remarks kept")
		return
	}

	updated := 0
	for _, p := range []Partition{Primary, Supplementary} {
		for _, rec := range m.store.records(p) {
			if rec.Category.IsBusinessTrip() && !rec.HasTripDetails() {
				continue
			}
			if m.refreshRemarkLocked(rec) {
				updated++
			}
		}
	}
	synced := m.syncResultsLocked()

	m.logger.Debug("Remarks refreshed for user name",
		logging.Field{Key: "files", Value: updated},
		logging.Field{Key: "results", Value: synced})
}

// refreshRemarkLocked recomputes a pending record's remark and reports
// whether it changed. Without a user name an existing remark is kept.
func (m *Manager) refreshRemarkLocked(rec *models.FileRecord) bool {
	if m.userName == "" && rec.Remark != "" {
		return false
	}
	next := remark.ForFileRecord(*rec, m.userName)
	if next == rec.Remark {
		return false
	}
	rec.Remark = next
	return true
}

// Remove deletes a pending record. IDs of the remaining records stay valid.
func (m *Manager) Remove(id models.RecordID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.writableRecordLocked(id); err != nil {
		return err
	}
	rec, p, _ := m.store.remove(id)

	m.logger.Debug("Record removed",
		logging.Field{Key: logging.FieldRecordID, Value: id},
		logging.Field{Key: logging.FieldFileName, Value: rec.Source.Name},
		logging.Field{Key: logging.FieldPartition, Value: p})
	return nil
}

// Reset clears both collections and all results and returns to collecting.
// A submission still outstanding is discarded when it completes.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.reset()
	m.submitted = false
	m.inFlight = ""
	m.generation++
	m.submittedNames = make(map[string]string)

	m.logger.Info("Collections reset")
}

// Records returns a snapshot of a collection in insertion order.
func (m *Manager) Records(p Partition) []models.FileRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := m.store.records(p)
	out := make([]models.FileRecord, len(recs))
	for i, rec := range recs {
		out[i] = *rec
	}
	return out
}

// Record returns a snapshot of one pending record.
func (m *Manager) Record(id models.RecordID) (models.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, _, _ := m.store.find(id)
	if rec == nil {
		return models.FileRecord{}, fmt.Errorf("%w: %s", ledgererror.ErrRecordNotFound, id)
	}
	return *rec, nil
}

// checkWritableLocked reports whether the target collection may be changed.
func (m *Manager) checkWritableLocked(target Partition) error {
	switch target {
	case Primary:
		if m.submitted {
			return ledgererror.ErrCollectionFrozen
		}
	case Supplementary:
		if !m.submitted {
			return ledgererror.ErrNotReviewing
		}
	default:
		return fmt.Errorf("unknown partition %q", target)
	}
	if m.inFlight == target {
		return ledgererror.ErrSubmissionInFlight
	}
	return nil
}

func (m *Manager) writableRecordLocked(id models.RecordID) (*models.FileRecord, error) {
	rec, p, _ := m.store.find(id)
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ledgererror.ErrRecordNotFound, id)
	}
	if err := m.checkWritableLocked(p); err != nil {
		return nil, err
	}
	return rec, nil
}
