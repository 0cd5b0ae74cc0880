package apiclient

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"burialdesk/internal/model"
)

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	var out model.LoginResult
	err := c.do(ctx, resty.MethodPost, "/auth/login", func(r *resty.Request) {
		r.SetBody(creds)
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser calls GET /auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, resty.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSettings calls GET /users/settings.
func (c *Client) GetSettings(ctx context.Context) (*model.Settings, error) {
	var out model.Settings
	if err := c.do(ctx, resty.MethodGet, "/users/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSettings calls PUT /users/settings and returns the API message.
func (c *Client) UpdateSettings(ctx context.Context, s model.Settings) (string, error) {
	var out messageBody
	err := c.do(ctx, resty.MethodPut, "/users/settings", func(r *resty.Request) {
		r.SetBody(s)
	}, &out)
	if err != nil {
		return "", err
	}
	return out.text(), nil
}

// ListUsers calls GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, resty.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterUser calls POST /auth/register.
func (c *Client) RegisterUser(ctx context.Context, u model.User) error {
	return c.do(ctx, resty.MethodPost, "/auth/register", func(r *resty.Request) {
		r.SetBody(u)
	}, nil)
}

// UpdateUser calls PUT /users/:id.
func (c *Client) UpdateUser(ctx context.Context, id string, u model.User) error {
	return c.do(ctx, resty.MethodPut, "/users/{id}", func(r *resty.Request) {
		r.SetPathParam("id", id).SetBody(u)
	}, nil)
}

// DeleteUser calls DELETE /users/:id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, resty.MethodDelete, "/users/{id}", withID(id), nil)
}

// ListLocations calls GET /locations. The API returns either plain names or
// {_id|id, name} objects; both are normalized to model.Location.
func (c *Client) ListLocations(ctx context.Context) ([]model.Location, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, resty.MethodGet, "/locations", nil, &raw); err != nil {
		return nil, err
	}

	out := make([]model.Location, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			out = append(out, model.Location{ID: name, Name: name})
			continue
		}
		var obj struct {
			MongoID string `json:"_id"`
			ID      string `json:"id"`
			Name    string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil || obj.Name == "" {
			continue
		}
		id := obj.MongoID
		if id == "" {
			id = obj.ID
		}
		out = append(out, model.Location{ID: id, Name: obj.Name})
	}
	return out, nil
}

// CreateLocation calls POST /locations.
func (c *Client) CreateLocation(ctx context.Context, name string) error {
	return c.do(ctx, resty.MethodPost, "/locations", func(r *resty.Request) {
		r.SetBody(map[string]string{"name": name})
	}, nil)
}

// DeleteLocation calls DELETE /locations/:id.
func (c *Client) DeleteLocation(ctx context.Context, id string) error {
	return c.do(ctx, resty.MethodDelete, "/locations/{id}", withID(id), nil)
}
