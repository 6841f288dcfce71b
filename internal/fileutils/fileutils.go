// Package fileutils provides common file operations used throughout the application.
package fileutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"

	"golang.org/x/sync/errgroup"
)

// sniffLen is the number of leading bytes inspected to detect a content type.
const sniffLen = 512

// maxConcurrentSniffs bounds the files opened at once while scanning.
const maxConcurrentSniffs = 8

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// DetectContentType returns the MIME type of a file from its leading bytes,
// falling back to its extension when the bytes are not recognised.
func DetectContentType(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := http.DetectContentType(buf[:n])
	if contentType == "application/octet-stream" || strings.HasPrefix(contentType, "text/plain") {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filePath))); byExt != "" {
			contentType = byExt
		}
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return contentType, nil
}

// ListFiles returns the regular files under the given paths. Directories are
// walked recursively; hidden entries inside them are skipped. The result
// keeps the argument order, and files within a directory are in lexical order.
func ListFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != p && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}
	}
	return files, nil
}

// CollectSourceFiles lists the files under paths and describes each one as a
// SourceFile, detecting content types concurrently. progress, when not nil,
// is called once per described file.
func CollectSourceFiles(ctx context.Context, paths []string, logger logging.Logger, progress func()) ([]models.SourceFile, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	files, err := ListFiles(paths)
	if err != nil {
		return nil, err
	}

	sources := make([]models.SourceFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSniffs)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := describe(path)
			if err != nil {
				return err
			}
			sources[i] = src
			logger.Debug("Scanned file",
				logging.Field{Key: logging.FieldFilePath, Value: path},
				logging.Field{Key: logging.FieldFileSize, Value: src.Size},
				logging.Field{Key: "content_type", Value: src.ContentType})
			if progress != nil {
				progress()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

func describe(path string) (models.SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.SourceFile{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	contentType, err := DetectContentType(path)
	if err != nil {
		return models.SourceFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return models.SourceFile{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: contentType,
		Path:        path,
	}, nil
}
