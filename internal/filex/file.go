// Package filex contains small filesystem helpers for the CLI.
package filex

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// FileInfo captures the immutable facts about a local file at selection
// time: display name, byte size and sniffed MIME type.
type FileInfo struct {
	Name     string
	Size     int64
	MimeType string
	Data     []byte
}

// ReadForUpload reads a local file into memory and captures its name, size
// and content type. The MIME type is sniffed from the first bytes via
// http.DetectContentType, which never fails (it falls back to
// "application/octet-stream").
func ReadForUpload(path string) (*FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &FileInfo{
		Name:     filepath.Base(path),
		Size:     int64(len(data)),
		MimeType: http.DetectContentType(data),
		Data:     data,
	}, nil
}
