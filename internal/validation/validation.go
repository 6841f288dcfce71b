// Package validation checks uploaded files and command inputs.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gphunter1004/automation/internal/ledgererror"
	"github.com/gphunter1004/automation/internal/models"
)

// Default upload limits.
const (
	DefaultMaxFiles      = 10
	DefaultMaxFileSizeMB = 50
	bytesPerMB           = 1024 * 1024
)

// DefaultExtensions are the accepted file extensions.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".pdf", ".tif", ".tiff"}

// DefaultContentTypes are the accepted MIME types.
var DefaultContentTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/tiff", "image/tif", "application/pdf"}

// FileRules describes which uploads are accepted. A file is supported when
// either its content type or its extension is listed.
type FileRules struct {
	MaxFileSize  int64
	Extensions   []string
	ContentTypes []string
}

// DefaultFileRules returns the built-in upload rules.
func DefaultFileRules() FileRules {
	return NewFileRules(DefaultMaxFileSizeMB, DefaultExtensions, DefaultContentTypes)
}

// NewFileRules builds rules from a size limit in megabytes and the accepted
// extensions and content types. Entries are compared case-insensitively.
func NewFileRules(maxFileSizeMB int, extensions, contentTypes []string) FileRules {
	return FileRules{
		MaxFileSize:  int64(maxFileSizeMB) * bytesPerMB,
		Extensions:   lowerAll(extensions),
		ContentTypes: lowerAll(contentTypes),
	}
}

// IsSupportedType reports whether the file's content type or extension is accepted.
func (r FileRules) IsSupportedType(f models.SourceFile) bool {
	if f.ContentType != "" && contains(r.ContentTypes, strings.ToLower(f.ContentType)) {
		return true
	}
	return contains(r.Extensions, strings.ToLower(filepath.Ext(f.Name)))
}

// IsValidSize reports whether the file fits within the size limit.
func (r FileRules) IsValidSize(f models.SourceFile) bool {
	return f.Size <= r.MaxFileSize
}

// ValidateFile returns a *ledgererror.RejectionError when f is not accepted.
func (r FileRules) ValidateFile(f models.SourceFile) error {
	if !r.IsSupportedType(f) {
		return &ledgererror.RejectionError{
			FileName: f.Name,
			Kind:     ledgererror.KindUnsupportedType,
			Reason:   fmt.Sprintf("unsupported file type, accepted: %s", strings.Join(r.Extensions, " ")),
		}
	}
	if !r.IsValidSize(f) {
		return &ledgererror.RejectionError{
			FileName: f.Name,
			Kind:     ledgererror.KindTooLarge,
			Reason:   fmt.Sprintf("file size %d exceeds the %dMB limit", f.Size, r.MaxFileSize/bytesPerMB),
		}
	}
	return nil
}

// IsValidPath checks if a given path exists and is a regular file or a directory.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidOutputFormat checks if the given export format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "csv", "xlsx":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'csv', 'xlsx'", format)
	}
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func contains(values []string, v string) bool {
	if v == "" {
		return false
	}
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
