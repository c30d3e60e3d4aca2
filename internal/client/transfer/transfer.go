// Package transfer moves one file's bytes to a pre-authorized destination,
// reporting fractional progress and supporting hard cancellation.
//
// A Transfer is single-use: construct it, call Run once, discard it. Retrying
// an upload means registering the file again and running a fresh Transfer —
// the destination URL's authorization may have expired.
package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTransferFailed is the single generic failure condition for an upload.
// The engine does not distinguish network errors from non-2xx statuses; both
// leave the file in the failed state awaiting an explicit user retry.
var ErrTransferFailed = errors.New("transfer failed")

// Destination describes where and how to send the bytes. It comes from the
// file-registration endpoint and is treated as opaque: the method, URL and
// headers are used exactly as issued.
type Destination struct {
	Method string // defaults to PUT
	URL    string
	Header http.Header
}

// Transfer is one cancellable upload.
type Transfer struct {
	client     *http.Client
	dest       Destination
	payload    []byte
	onProgress func(percent int)
}

// New builds a Transfer. onProgress may be nil; when set it is invoked from
// the transport goroutine with whole percentages in ascending order. Small
// payloads may produce no progress events at all before completion.
func New(dest Destination, payload []byte, onProgress func(percent int)) *Transfer {
	return &Transfer{
		client:     http.DefaultClient,
		dest:       dest,
		payload:    payload,
		onProgress: onProgress,
	}
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func (t *Transfer) WithHTTPClient(c *http.Client) *Transfer {
	t.client = c
	return t
}

// Run performs the upload. It returns nil on a 2xx final status,
// the context error when cancelled mid-flight (the connection is aborted),
// and ErrTransferFailed for everything else.
func (t *Transfer) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	method := t.dest.Method
	if method == "" {
		method = http.MethodPut
	}

	body := &progressReader{
		r:      bytes.NewReader(t.payload),
		total:  int64(len(t.payload)),
		report: t.onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, method, t.dest.URL, body)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrTransferFailed, err)
	}
	req.ContentLength = int64(len(t.payload))
	for k, vs := range t.dest.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s", ErrTransferFailed, resp.Status)
	}
	return nil
}

// progressReader reports percent milestones as the transport drains the
// payload. Progress is proportional to bytes acknowledged by Read, so it is
// not assumed smooth; each whole percent is reported at most once.
type progressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	last   int
	report func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 && p.report != nil {
		p.sent += int64(n)
		pct := int(p.sent * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}
