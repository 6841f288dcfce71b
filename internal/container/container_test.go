package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gphunter1004/automation/internal/collection"
	"github.com/gphunter1004/automation/internal/config"
	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		Upload: config.UploadConfig{
			MaxFiles:              2,
			MaxFileSizeMB:         1,
			SupportedExtensions:   validation.DefaultExtensions,
			SupportedContentTypes: validation.DefaultContentTypes,
		},
		Categories: config.CategoriesConfig{File: filepath.Join(dir, "categories.yaml")},
		Form: config.FormConfig{
			File:     filepath.Join(dir, "form.yaml"),
			Defaults: models.FormFields{AttrCD: "8A", DeptCD: "D1"},
		},
		Export: config.ExportConfig{Delimiter: ";"},
	}
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
	}{
		{name: "nil config", config: nil, expectError: true},
		{name: "valid config", config: testConfig(t.TempDir())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "configuration cannot be nil")
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.GetLogger())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetClassifier())
			assert.NotNil(t, c.GetCategoryStore())
			assert.NotNil(t, c.GetFormStore())
			assert.NotNil(t, c.GetManager())
			assert.NotNil(t, c.GetWriter())
			assert.NoError(t, c.Close())
		})
	}
}

func TestContainer_WiresConfiguration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.yaml"), []byte("lunch: [brunch]\n"), 0600))

	c, err := NewContainerWithLogger(testConfig(dir), logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, models.CategoryLunch, c.GetClassifier().Classify("brunch.jpg"))
	assert.Equal(t, int64(1024*1024), c.GetFileRules().MaxFileSize)

	m := c.GetManager()
	res, err := m.AddFiles([]models.SourceFile{
		{Name: "a.jpg", Size: 1},
		{Name: "b.jpg", Size: 1},
		{Name: "c.jpg", Size: 1},
	}, collection.Primary)
	require.NoError(t, err)
	assert.Empty(t, res.Added)
	require.Len(t, res.Rejected, 1)
}

func TestContainer_LoadForm(t *testing.T) {
	dir := t.TempDir()
	c, err := NewContainerWithLogger(testConfig(dir), nil)
	require.NoError(t, err)

	form, err := c.LoadForm()
	require.NoError(t, err)
	assert.Equal(t, models.FormFields{AttrCD: "8A", DeptCD: "D1"}, form)

	require.NoError(t, c.GetFormStore().Save(models.FormFields{UserName: "Kim", DeptCD: "D9"}))
	form, err = c.LoadForm()
	require.NoError(t, err)
	assert.Equal(t, models.FormFields{UserName: "Kim", AttrCD: "8A", DeptCD: "D9"}, form)
}
