package collection

import (
	"context"
	"fmt"

	"github.com/gphunter1004/automation/internal/dateutils"
	"github.com/gphunter1004/automation/internal/ledgererror"
	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"
)

// SubmittedFile is the per-file part of a submission. Files are sent in
// collection order and results are matched back by file name.
type SubmittedFile struct {
	Source          models.SourceFile   `json:"source"`
	Category        models.CategoryCode `json:"category"`
	Remark          string              `json:"remark"`
	AdditionalNames string              `json:"additionalNames"`
	BusinessContent string              `json:"businessContent,omitempty"`
	Purpose         string              `json:"purpose,omitempty"`
}

// Submission is what the OCR service receives.
type Submission struct {
	Partition Partition         `json:"partition"`
	Form      models.FormFields `json:"form"`
	Files     []SubmittedFile   `json:"files"`
}

// Submitter sends a submission to the OCR service and returns one result per
// recognised file.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) ([]models.ResultRecord, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, sub Submission) ([]models.ResultRecord, error)

// Submit calls f(ctx, sub).
func (f SubmitterFunc) Submit(ctx context.Context, sub Submission) ([]models.ResultRecord, error) {
	return f(ctx, sub)
}

// Submit validates the target collection and sends it to submitter. Only one
// submission may be outstanding; a second attempt fails with
// ErrSubmissionInFlight. The submitter runs without the manager lock held.
//
// A successful primary submission installs the results and freezes the primary
// collection. A successful supplementary submission appends its results and
// empties the supplementary collection. On failure the collection is kept.
func (m *Manager) Submit(ctx context.Context, submitter Submitter, target Partition, form models.FormFields) ([]models.ResultRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sub, generation, err := m.beginSubmit(target, form)
	if err != nil {
		return nil, err
	}

	log := m.logger.WithFields(
		logging.Field{Key: logging.FieldPartition, Value: target},
		logging.Field{Key: logging.FieldCount, Value: len(sub.Files)},
	)
	log.Info("Submitting files")

	results, err := submitter.Submit(ctx, sub)

	m.mu.Lock()
	defer m.mu.Unlock()

	if generation != m.generation {
		log.Warn("Discarding submission response after reset")
		return nil, ledgererror.ErrSubmissionDiscarded
	}
	m.inFlight = ""

	if err != nil {
		log.WithError(err).Error("Submission failed")
		return nil, &ledgererror.SubmissionError{Partition: string(target), Err: err}
	}

	installed := m.completeSubmitLocked(target, sub, results)
	log.Info("Submission completed", logging.Field{Key: "results", Value: len(installed)})
	return installed, nil
}

func (m *Manager) beginSubmit(target Partition, form models.FormFields) (Submission, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inFlight != "" {
		return Submission{}, 0, ledgererror.ErrSubmissionInFlight
	}
	if err := m.checkWritableLocked(target); err != nil {
		return Submission{}, 0, err
	}
	if err := m.validateLocked(target, form); err != nil {
		return Submission{}, 0, err
	}

	if form.UserName != m.userName {
		m.setUserNameLocked(form.UserName)
	}

	recs := m.store.records(target)
	sub := Submission{
		Partition: target,
		Form:      form,
		Files:     make([]SubmittedFile, len(recs)),
	}
	for i, rec := range recs {
		sub.Files[i] = SubmittedFile{
			Source:          rec.Source,
			Category:        rec.Category,
			Remark:          rec.Remark,
			AdditionalNames: rec.AdditionalNames,
			BusinessContent: rec.BusinessContent,
			Purpose:         rec.Purpose,
		}
	}

	m.inFlight = target
	return sub, m.generation, nil
}

// Validate checks that the target collection could be submitted with form
// without submitting it.
func (m *Manager) Validate(target Partition, form models.FormFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validateLocked(target, form)
}

func (m *Manager) validateLocked(target Partition, form models.FormFields) error {
	if form.UserName == "" {
		return &ledgererror.RequiredFieldError{Field: models.FormFieldUserName}
	}

	recs := m.store.records(target)
	if len(recs) == 0 {
		return fmt.Errorf("%s: %w", target, ledgererror.ErrEmptyCollection)
	}

	for _, rec := range recs {
		if !rec.Category.IsBusinessTrip() {
			continue
		}
		if rec.BusinessContent == "" {
			return &ledgererror.RequiredFieldError{FileName: rec.Source.Name, Field: string(FieldBusinessContent)}
		}
		if rec.Purpose == "" {
			return &ledgererror.RequiredFieldError{FileName: rec.Source.Name, Field: string(FieldPurpose)}
		}
	}
	return nil
}

func (m *Manager) completeSubmitLocked(target Partition, sub Submission, results []models.ResultRecord) []models.ResultRecord {
	sizes := make(map[string][]int64, len(sub.Files))
	for _, f := range sub.Files {
		sizes[f.Source.Name] = append(sizes[f.Source.Name], f.Source.Size)
		m.submittedNames[f.Source.Name] = f.AdditionalNames
	}

	// Primary records stay frozen, keeping their dedup keys, until Reset.
	if target == Supplementary {
		m.store.take(target)
	}

	payDate := dateutils.CalculatePaymentDate(m.now())
	installed := make([]*models.ResultRecord, len(results))
	out := make([]models.ResultRecord, len(results))
	for i := range results {
		r := results[i]
		if r.ID == "" {
			r.ID = models.NewRecordID()
		}
		if r.PayDate == "" {
			r.PayDate = payDate
		}
		installed[i] = &r
		out[i] = r
	}
	m.store.addResults(installed, sizes)
	m.submitted = true

	return out
}
