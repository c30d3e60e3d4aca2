package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/printdraft/internal/client/models"
)

// HTTPClient is the concrete JSON-over-HTTP implementation of Client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the backend at baseURL. A zero timeout
// disables the per-request deadline (callers still control lifetimes via
// contexts).
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError is the backend's error envelope: {"error": {"code", "message"}}.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *HTTPClient) RegisterFile(ctx context.Context, orderID string, reg FileRegistration) (*FileDestination, error) {
	var dest FileDestination
	path := fmt.Sprintf("/orders/%s/files", orderID)
	if err := c.doJSON(ctx, http.MethodPost, path, reg, &dest); err != nil {
		return nil, err
	}
	if dest.ID == "" || dest.UploadURL == "" {
		return nil, fmt.Errorf("%w: registration response missing id or uploadUrl", ErrServer)
	}
	return &dest, nil
}

func (c *HTTPClient) DeleteFile(ctx context.Context, orderID, fileID string) error {
	path := fmt.Sprintf("/orders/%s/files/%s", orderID, fileID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) Thumbnail(ctx context.Context, orderID, fileID string) (*Thumbnail, error) {
	path := fmt.Sprintf("/orders/%s/files/%s/thumbnail", orderID, fileID)

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted:
		return nil, ErrProcessing
	case http.StatusOK:
		var body struct {
			Data *string `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: decoding thumbnail response: %v", ErrServer, err)
		}
		if body.Data == nil {
			return &Thumbnail{NoPreview: true}, nil
		}
		return &Thumbnail{Ref: *body.Data}, nil
	default:
		return nil, c.statusError(resp)
	}
}

func (c *HTTPClient) Papers(ctx context.Context) ([]models.Paper, error) {
	var papers []models.Paper
	if err := c.doJSON(ctx, http.MethodGet, "/opts/papers", nil, &papers); err != nil {
		return nil, err
	}
	return papers, nil
}

// do issues one request with an optional JSON body. Transport-level failures
// surface as ErrUnavailable unless the caller's context was cancelled.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// doJSON issues a request and decodes a 2xx response into out (when out is
// non-nil). Non-2xx responses are mapped to sentinel errors exactly once,
// here.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload, out any) error {
	resp, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrServer, err)
	}
	return nil
}

// statusError converts a non-2xx response into a sentinel error, attaching
// the server's code/message when the body carries the error envelope.
func (c *HTTPClient) statusError(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var envelope apiError
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(b, &envelope); err == nil && envelope.Error.Code != "" {
		return fmt.Errorf("%w: %s (%s)", ErrServer, envelope.Error.Message, envelope.Error.Code)
	}
	return fmt.Errorf("%w: %s", ErrServer, resp.Status)
}
