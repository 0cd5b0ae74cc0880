// Package storage uploads record attachments to S3-compatible object storage
// and returns the location that is stored on the record.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
)

// ErrEmptyFile is returned when an attachment has no content reader.
var ErrEmptyFile = errors.New("file content is required")

// File is one attachment selected by the operator. Size is -1 when unknown.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// DetectContentType returns f.ContentType, falling back to the extension
// of the file name and then to application/octet-stream.
func (f File) DetectContentType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(f.Name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Uploader stores one file and returns its persisted location.
// Implementations must be safe for concurrent use; uploads run in parallel.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}
