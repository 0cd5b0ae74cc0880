package apiclient

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// PresignedUpload is the answer of POST /upload/presigned-url.
type PresignedUpload struct {
	PresignedURL string `json:"presignedUrl"`
	FileURL      string `json:"fileUrl"`
}

// PresignUpload asks the API for a one-shot PUT URL for a file.
func (c *Client) PresignUpload(ctx context.Context, fileName, fileType, folder string) (*PresignedUpload, error) {
	var out PresignedUpload
	err := c.do(ctx, resty.MethodPost, "/upload/presigned-url", func(r *resty.Request) {
		r.SetBody(map[string]string{
			"fileName": fileName,
			"fileType": fileType,
			"folder":   folder,
		})
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
