package collection

import (
	"context"
	"testing"
	"time"

	"github.com/gphunter1004/automation/internal/categorizer"
	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/remark"
	"github.com/gphunter1004/automation/internal/validation"

	"github.com/stretchr/testify/require"
)

const testIssueDate = "2025. 4. 23. 12: 30:00"

var testNow = time.Date(2025, 4, 5, 9, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*Manager, *logging.MockLogger) {
	t.Helper()
	mock := logging.NewMockLogger()
	m := NewManager(categorizer.NewClassifier(nil, mock), validation.DefaultFileRules(), 10, mock)
	m.SetClock(func() time.Time { return testNow })
	return m, mock
}

func file(name string, size int64) models.SourceFile {
	return models.SourceFile{Name: name, Size: size}
}

func files(names ...string) []models.SourceFile {
	out := make([]models.SourceFile, len(names))
	for i, n := range names {
		out[i] = file(n, int64(100+i))
	}
	return out
}

// echoSubmitter answers like the OCR service: one result per file with a
// generated remark.
func echoSubmitter() SubmitterFunc {
	return func(_ context.Context, sub Submission) ([]models.ResultRecord, error) {
		results := make([]models.ResultRecord, len(sub.Files))
		for i, f := range sub.Files {
			results[i] = models.ResultRecord{
				FileName:  f.Source.Name,
				Category:  f.Category,
				Remark:    remark.GenerateDefault(testIssueDate, remark.JoinNames(sub.Form.UserName, f.AdditionalNames), f.Category),
				Purpose:   f.Purpose,
				Amount:    "10,000",
				IssueDate: testIssueDate,
			}
		}
		return results, nil
	}
}

func submitPrimary(t *testing.T, m *Manager, names ...string) []models.ResultRecord {
	t.Helper()
	res, err := m.AddFiles(files(names...), Primary)
	require.NoError(t, err)
	require.Len(t, res.Added, len(names))
	results, err := m.Submit(context.Background(), echoSubmitter(), Primary, models.FormFields{UserName: "Kim"})
	require.NoError(t, err)
	return results
}
