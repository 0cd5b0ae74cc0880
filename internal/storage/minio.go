package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"burialdesk/internal/config"
)

// objectPutter is the subset of *minio.Client used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinIOUploader writes attachments straight to a bucket with static credentials.
// It is safe for concurrent use by multiple goroutines.
type MinIOUploader struct {
	client  objectPutter
	bucket  string
	folder  string
	baseURL string
}

// NewMinIO creates the uploader. It validates connectivity and ensures the
// bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig, folder string) (*MinIOUploader, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return newMinIOUploader(cli, cfg.Bucket, folder, cli.EndpointURL().String()), nil
}

func newMinIOUploader(client objectPutter, bucket, folder, baseURL string) *MinIOUploader {
	return &MinIOUploader{
		client:  client,
		bucket:  bucket,
		folder:  strings.Trim(folder, "/"),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores f under folder/<uuid><ext> and returns the object URL.
func (m *MinIOUploader) Upload(ctx context.Context, f File) (string, error) {
	if f.Content == nil {
		return "", ErrEmptyFile
	}

	key := path.Join(m.folder, uuid.NewString()+strings.ToLower(filepath.Ext(f.Name)))
	size := f.Size
	if size == 0 {
		size = -1
	}

	_, err := m.client.PutObject(ctx, m.bucket, key, f.Content, size, minio.PutObjectOptions{
		ContentType:  f.DetectContentType(),
		UserMetadata: map[string]string{"original-filename": f.Name},
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return m.baseURL + "/" + m.bucket + "/" + key, nil
}
