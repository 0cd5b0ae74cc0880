package apiclient

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"burialdesk/internal/model"
)

// RecordQuery filters the records listing. Zero values are omitted.
type RecordQuery struct {
	Search         string
	BurialLocation string
	Status         string
	Gender         string
	CreatedBy      string
	StartDate      *time.Time
	EndDate        *time.Time
	Page           int
	Limit          int
}

// Params renders the query string parameters.
func (q RecordQuery) Params() map[string]string {
	p := map[string]string{}
	set := func(k, v string) {
		if v != "" {
			p[k] = v
		}
	}
	set("search", q.Search)
	set("burialLocation", q.BurialLocation)
	set("status", q.Status)
	set("gender", q.Gender)
	set("createdBy", q.CreatedBy)
	if q.StartDate != nil {
		p["startDate"] = q.StartDate.UTC().Format(time.RFC3339)
	}
	if q.EndDate != nil {
		p["endDate"] = q.EndDate.UTC().Format(time.RFC3339)
	}
	if q.Page > 0 {
		p["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		p["limit"] = strconv.Itoa(q.Limit)
	}
	return p
}

// ListRecords calls GET /records.
func (c *Client) ListRecords(ctx context.Context, q RecordQuery) (*model.RecordPage, error) {
	var out model.RecordPage
	err := c.do(ctx, resty.MethodGet, "/records", func(r *resty.Request) {
		r.SetQueryParams(q.Params())
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecord calls GET /records/:id.
func (c *Client) GetRecord(ctx context.Context, id string) (*model.Record, error) {
	var out model.Record
	if err := c.do(ctx, resty.MethodGet, "/records/{id}", withID(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRecord calls POST /records.
func (c *Client) CreateRecord(ctx context.Context, payload map[string]any) (*model.Record, error) {
	var out model.Record
	err := c.do(ctx, resty.MethodPost, "/records", func(r *resty.Request) {
		r.SetBody(payload)
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecord calls PUT /records/:id.
func (c *Client) UpdateRecord(ctx context.Context, id string, payload map[string]any) (*model.Record, error) {
	var out model.Record
	err := c.do(ctx, resty.MethodPut, "/records/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id).SetBody(payload)
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRecord calls DELETE /records/:id.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.do(ctx, resty.MethodDelete, "/records/{id}", withID(id), nil)
}

// BulkDeleteRecords calls DELETE /records with the ids in the body and returns the API message.
func (c *Client) BulkDeleteRecords(ctx context.Context, ids []string) (string, error) {
	var out messageBody
	err := c.do(ctx, resty.MethodDelete, "/records", func(r *resty.Request) {
		r.SetBody(map[string]any{"recordIds": ids})
	}, &out)
	if err != nil {
		return "", err
	}
	return out.text(), nil
}

// ListPublicRecords calls GET /public/records.
func (c *Client) ListPublicRecords(ctx context.Context, status string, page, limit int) (*model.PublicRecordPage, error) {
	var out model.PublicRecordPage
	err := c.do(ctx, resty.MethodGet, "/public/records", func(r *resty.Request) {
		r.SetQueryParams(RecordQuery{Status: status, Page: page, Limit: limit}.Params())
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Verification is the body of a verify/reject decision.
type Verification struct {
	Status          model.Status `json:"status"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
}

// VerifyPublicRecord calls PUT /records/verify-public/:id and returns the API message.
func (c *Client) VerifyPublicRecord(ctx context.Context, id string, v Verification) (string, error) {
	var out messageBody
	err := c.do(ctx, resty.MethodPut, "/records/verify-public/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id).SetBody(v)
	}, &out)
	if err != nil {
		return "", err
	}
	return out.text(), nil
}

// Overview calls GET /reports/overview.
func (c *Client) Overview(ctx context.Context) (*model.Overview, error) {
	var out model.Overview
	if err := c.do(ctx, resty.MethodGet, "/reports/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
