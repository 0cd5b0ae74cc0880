package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/config"
)

type mockPutter struct {
	mock.Mock
}

func (m *mockPutter) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucket, key, r, size, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

// fakePresigner avoids an import cycle with the mocks package.
type fakePresigner struct {
	mock.Mock
}

func (f *fakePresigner) PresignUpload(ctx context.Context, fileName, fileType, folder string) (*apiclient.PresignedUpload, error) {
	args := f.Called(ctx, fileName, fileType, folder)
	if p, ok := args.Get(0).(*apiclient.PresignedUpload); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestFile_DetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", File{Name: "a.bin", ContentType: "image/png"}.DetectContentType())
	assert.Equal(t, "application/pdf", File{Name: "permit.pdf"}.DetectContentType())
	assert.Equal(t, "application/octet-stream", File{Name: "noext"}.DetectContentType())
}

func TestMinIOUploader_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		file       File
		setupMocks func(m *mockPutter)
		wantPrefix string
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			file: File{Name: "Permit.PDF", Size: 5, Content: strings.NewReader("hello")},
			setupMocks: func(m *mockPutter) {
				m.On("PutObject", ctx, "burials", mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "records/") && strings.HasSuffix(key, ".pdf")
				}), mock.Anything, int64(5), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
					return o.ContentType == "application/pdf" && o.UserMetadata["original-filename"] == "Permit.PDF"
				})).Return(minio.UploadInfo{Size: 5}, nil)
			},
			wantPrefix: "http://minio:9000/burials/records/",
		},
		{
			name: "unknown size streams",
			file: File{Name: "id.jpg", Content: strings.NewReader("x")},
			setupMocks: func(m *mockPutter) {
				m.On("PutObject", ctx, "burials", mock.Anything, mock.Anything, int64(-1), mock.Anything).
					Return(minio.UploadInfo{}, nil)
			},
			wantPrefix: "http://minio:9000/burials/records/",
		},
		{
			name:    "nil content",
			file:    File{Name: "x.pdf"},
			wantErr: ErrEmptyFile,
		},
		{
			name: "backend error",
			file: File{Name: "x.pdf", Size: 1, Content: strings.NewReader("x")},
			setupMocks: func(m *mockPutter) {
				m.On("PutObject", ctx, "burials", mock.Anything, mock.Anything, int64(1), mock.Anything).
					Return(minio.UploadInfo{}, errors.New("access denied"))
			},
			wantErrMsg: "access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mockPutter)
			if tt.setupMocks != nil {
				tt.setupMocks(m)
			}
			u := newMinIOUploader(m, "burials", "/records/", "http://minio:9000/")

			got, err := u.Upload(ctx, tt.file)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(got, tt.wantPrefix), got)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestNewMinIO_Validation(t *testing.T) {
	_, err := NewMinIO(config.MinIOConfig{}, "records")
	assert.EqualError(t, err, "minio endpoint is required")

	_, err = NewMinIO(config.MinIOConfig{Endpoint: "localhost:9000"}, "records")
	assert.EqualError(t, err, "minio credentials are required")

	_, err = NewMinIO(config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, "records")
	assert.EqualError(t, err, "minio bucket is required")
}

func TestPresignedUploader_Upload(t *testing.T) {
	ctx := context.Background()

	var gotBody, gotType, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		gotToken = r.Header.Get(apiclient.TokenHeader)
		if strings.HasSuffix(r.URL.Path, "/denied") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	t.Run("happy path", func(t *testing.T) {
		p := new(fakePresigner)
		p.On("PresignUpload", ctx, "permit.pdf", "application/pdf", "records").
			Return(&apiclient.PresignedUpload{PresignedURL: srv.URL + "/put", FileURL: "https://cdn/records/permit.pdf"}, nil)

		u := NewPresigned(p, "", 5*time.Second, zap.NewNop())
		got, err := u.Upload(ctx, File{Name: "permit.pdf", Size: 7, Content: strings.NewReader("pdfdata")})

		require.NoError(t, err)
		assert.Equal(t, "https://cdn/records/permit.pdf", got)
		assert.Equal(t, "pdfdata", gotBody)
		assert.Equal(t, "application/pdf", gotType)
		assert.Empty(t, gotToken)
		p.AssertExpectations(t)
	})

	t.Run("presign error", func(t *testing.T) {
		p := new(fakePresigner)
		p.On("PresignUpload", ctx, "a.png", "image/png", "docs").
			Return(nil, &apiclient.APIError{StatusCode: 401})

		u := NewPresigned(p, "docs", 5*time.Second, zap.NewNop())
		_, err := u.Upload(ctx, File{Name: "a.png", Content: strings.NewReader("x")})

		var apiErr *apiclient.APIError
		assert.ErrorAs(t, err, &apiErr)
	})

	t.Run("store rejects put", func(t *testing.T) {
		p := new(fakePresigner)
		p.On("PresignUpload", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(&apiclient.PresignedUpload{PresignedURL: srv.URL + "/denied"}, nil)

		u := NewPresigned(p, "", 5*time.Second, zap.NewNop())
		_, err := u.Upload(ctx, File{Name: "a.png", Content: strings.NewReader("x")})

		assert.ErrorContains(t, err, "status 403")
	})

	t.Run("nil content", func(t *testing.T) {
		u := NewPresigned(new(fakePresigner), "", time.Second, zap.NewNop())
		_, err := u.Upload(ctx, File{Name: "a.png"})
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}
