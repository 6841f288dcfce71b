package fileutils_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gphunter1004/automation/internal/fileutils"
	"github.com/gphunter1004/automation/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")
	jpegHeader = []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF\x00")
	pdfHeader  = []byte("%PDF-1.7\n")
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, data, 0600))
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	writeFile(t, testFile, []byte("test"))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()
	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "missing")))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
	assert.True(t, fileutils.DirectoryExists(dir))
	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
}

func TestDetectContentType(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"receipt.png", pngHeader, "image/png"},
		{"receipt.jpg", jpegHeader, "image/jpeg"},
		{"scan.pdf", pdfHeader, "application/pdf"},
		{"renamed.bin", jpegHeader, "image/jpeg"},
		{"notes.txt", []byte("hello"), "text/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			writeFile(t, path, tt.data)
			got, err := fileutils.DetectContentType(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := fileutils.DetectContentType(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.jpg"), jpegHeader)
	writeFile(t, filepath.Join(dir, "a.png"), pngHeader)
	writeFile(t, filepath.Join(dir, "nested", "c.pdf"), pdfHeader)
	writeFile(t, filepath.Join(dir, ".hidden", "d.jpg"), jpegHeader)
	writeFile(t, filepath.Join(dir, ".DS_Store"), []byte("x"))
	single := filepath.Join(t.TempDir(), "single.jpg")
	writeFile(t, single, jpegHeader)

	files, err := fileutils.ListFiles([]string{single, dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		single,
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "nested", "c.pdf"),
	}, files)

	_, err = fileutils.ListFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestCollectSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lunch(Lee).jpg"), jpegHeader)
	writeFile(t, filepath.Join(dir, "taxi.png"), pngHeader)

	var calls atomic.Int32
	mock := logging.NewMockLogger()
	sources, err := fileutils.CollectSourceFiles(context.Background(), []string{dir}, mock, func() { calls.Add(1) })
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "lunch(Lee).jpg", sources[0].Name)
	assert.Equal(t, int64(len(jpegHeader)), sources[0].Size)
	assert.Equal(t, "image/jpeg", sources[0].ContentType)
	assert.Equal(t, filepath.Join(dir, "lunch(Lee).jpg"), sources[0].Path)
	assert.Equal(t, "image/png", sources[1].ContentType)

	assert.Equal(t, int32(2), calls.Load())
	assert.Len(t, mock.GetEntriesByLevel("DEBUG"), 2)
}

func TestCollectSourceFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"), jpegHeader)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fileutils.CollectSourceFiles(ctx, []string{dir}, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
