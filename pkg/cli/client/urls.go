package client

import (
	"context"
	"net/http"
	"net/url"

	"url-admin/pkg/models"
)

// Login exchanges credentials for a token. It never sends a bearer header
// and reports any rejection as "Invalid credentials".
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	body, err := encodePayload(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	req, err := c.buildRequest(ctx, http.MethodPost, "/auth/login", body, false)
	if err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	if err := c.doPublicRequest(req, msgInvalidCredentials, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &RequestError{Message: msgInvalidCredentials}
	}
	return &resp, nil
}

// ListURLs retrieves all URL records in backend order
func (c *Client) ListURLs(ctx context.Context) ([]models.URLRecord, error) {
	var records []models.URLRecord
	if err := c.doAuthRequest(ctx, http.MethodGet, "/urls", nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.URLRecord{}
	}
	return records, nil
}

// CreateURL creates a new URL record
func (c *Client) CreateURL(ctx context.Context, create models.URLCreate) (*models.URLRecord, error) {
	var created models.URLRecord
	if err := c.doAuthRequest(ctx, http.MethodPost, "/urls", create, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateURL partially updates a URL record
func (c *Client) UpdateURL(ctx context.Context, id string, update models.URLUpdate) (*models.URLRecord, error) {
	var updated models.URLRecord
	if err := c.doAuthRequest(ctx, http.MethodPatch, "/urls/"+url.PathEscape(id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteURL deletes a URL record by ID. The acknowledgement body is ignored.
func (c *Client) DeleteURL(ctx context.Context, id string) error {
	return c.doAuthRequest(ctx, http.MethodDelete, "/urls/"+url.PathEscape(id), nil, nil)
}

// GetOnePublic fetches one publicly exposed URL. No credentials are sent and
// caches are bypassed so repeated calls see fresh picks.
func (c *Client) GetOnePublic(ctx context.Context) (*models.PublicURL, error) {
	req, err := c.buildRequest(ctx, http.MethodGet, "/url", nil, false)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	var resp models.PublicURL
	if err := c.doPublicRequest(req, msgNoURL, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
