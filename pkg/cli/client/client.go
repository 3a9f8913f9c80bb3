package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TokenSource supplies the current bearer token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Client is an HTTP client for the URL admin backend
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new API client. The token is read from tokens on
// every request; the client never changes the session itself.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	// Remove trailing slash from base URL
	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		// No client-side timeout; callers cancel through the context.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildRequest creates an HTTP request with proper headers
func (c *Client) buildRequest(ctx context.Context, method, path string, body io.Reader, withAuth bool) (*http.Request, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &RequestError{Message: "failed to create request", Err: err}
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Only set Authorization header if a token is present
	if withAuth && c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	return req, nil
}

// do sends req and returns status and body. Transport failures become a
// RequestError with a generic message.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &RequestError{Message: msgNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &RequestError{Message: msgNetwork, StatusCode: resp.StatusCode, Err: err}
	}
	return resp.StatusCode, body, nil
}

// doAuthRequest performs an authenticated request. 401 is checked before
// anything else and reported as ErrUnauthorized.
func (c *Client) doAuthRequest(ctx context.Context, method, path string, payload interface{}, result interface{}) error {
	body, err := encodePayload(payload)
	if err != nil {
		return err
	}

	req, err := c.buildRequest(ctx, method, path, body, true)
	if err != nil {
		return err
	}

	status, respBody, err := c.do(req)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if !isSuccess(status) {
		return &RequestError{Message: errorMessage(status, respBody), StatusCode: status}
	}

	return decodeResult(respBody, result)
}

// doPublicRequest performs a request without credentials. A non-success
// status is reported with failMsg; transport failures keep the network
// message.
func (c *Client) doPublicRequest(req *http.Request, failMsg string, result interface{}) error {
	status, respBody, err := c.do(req)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return &RequestError{Message: failMsg, StatusCode: status}
	}
	return decodeResult(respBody, result)
}

func encodePayload(payload interface{}) (io.Reader, error) {
	if payload == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, &RequestError{Message: "failed to encode request", Err: err}
	}
	return bytes.NewReader(jsonData), nil
}

func decodeResult(body []byte, result interface{}) error {
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &RequestError{Message: msgInvalidResponse, Err: err}
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// errorMessage extracts {"error": "..."} from the body, falling back to the
// raw body and then to the status text
func errorMessage(status int, body []byte) string {
	var errorResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
		return errorResp.Error
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}
