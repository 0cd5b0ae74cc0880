package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"burialdesk/internal/apiclient"
)

// Presigner issues one-shot upload URLs.
type Presigner interface {
	PresignUpload(ctx context.Context, fileName, fileType, folder string) (*apiclient.PresignedUpload, error)
}

// PresignedUploader asks the API for a presigned URL and PUTs the file body to it.
// S3 rejects chunked uploads, so the body is buffered to send a Content-Length.
// The PUT goes through its own HTTP client so the session token never reaches
// the object store.
type PresignedUploader struct {
	presigner Presigner
	http      *resty.Client
	folder    string
}

// NewPresigned creates the uploader. folder defaults to "records".
func NewPresigned(p Presigner, folder string, timeout time.Duration, log *zap.Logger) *PresignedUploader {
	if folder == "" {
		folder = "records"
	}
	return &PresignedUploader{
		presigner: p,
		folder:    folder,
		http: resty.New().
			SetTimeout(timeout).
			SetLogger(log.Sugar()).
			SetTransport(otelhttp.NewTransport(http.DefaultTransport)),
	}
}

// Upload returns the permanent file URL reported by the presign call.
func (u *PresignedUploader) Upload(ctx context.Context, f File) (string, error) {
	if f.Content == nil {
		return "", ErrEmptyFile
	}
	contentType := f.DetectContentType()

	p, err := u.presigner.PresignUpload(ctx, f.Name, contentType, u.folder)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", f.Name, err)
	}

	req := u.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetContentLength(true).
		SetBody(f.Content)

	resp, err := req.Put(p.PresignedURL)
	if err != nil {
		return "", fmt.Errorf("put %s: %w", f.Name, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("put %s: object store returned status %d", f.Name, resp.StatusCode())
	}
	return p.FileURL, nil
}
