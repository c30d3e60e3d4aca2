// Package thumbs fetches server-derived thumbnail previews, tolerating the
// window where the artifact has not been generated yet.
//
// A "processing" answer from the backend is retried on a fixed cadence for
// as long as the caller's context lives; there is no overall timeout. The
// two definitive answers — an image reference or "no preview for this file
// type" — are cached for an hour, since the artifact never changes once
// generated. Any other failure is terminal for that request and not cached.
package thumbs

import (
	"context"
	"errors"
	"time"

	"github.com/FloatTech/ttl"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/printdraft/internal/client/api"
	"github.com/dmitrijs2005/printdraft/internal/logging"
)

const (
	pollInterval = 500 * time.Millisecond
	cacheTTL     = time.Hour
)

// Result is a definitive thumbnail outcome.
type Result struct {
	Ref       string
	NoPreview bool
}

// Poller polls thumbnails per (orderID, fileID). Safe for concurrent use;
// many polls can be in flight at once, one per visible file.
type Poller struct {
	client   api.Client
	log      logging.Logger
	interval time.Duration
	cache    *ttl.Cache[string, *Result]
}

func New(client api.Client, log logging.Logger) *Poller {
	return &Poller{
		client:   client,
		log:      log,
		interval: pollInterval,
		cache:    ttl.NewCache[string, *Result](cacheTTL),
	}
}

func cacheKey(orderID, fileID string) string {
	return orderID + "/" + fileID
}

// Fetch returns the thumbnail outcome for a file, polling until the backend
// gives a definitive answer or ctx is cancelled. Cancelling the context is
// the only way to stop an endlessly-processing poll; the caller ties the
// context to its view lifetime. A result obtained after cancellation is
// discarded, never cached.
func (p *Poller) Fetch(ctx context.Context, orderID, fileID string) (*Result, error) {
	key := cacheKey(orderID, fileID)
	if r := p.cache.Get(key); r != nil {
		return r, nil
	}

	var out *Result
	attempt := 0
	err := retry.Do(ctx, retry.NewConstant(p.interval), func(ctx context.Context) error {
		attempt++
		th, err := p.client.Thumbnail(ctx, orderID, fileID)
		if err != nil {
			if errors.Is(err, api.ErrProcessing) {
				p.log.Debug(ctx, "thumbnail still processing", "file", fileID, "attempt", attempt)
				return retry.RetryableError(err)
			}
			return err
		}
		out = &Result{Ref: th.Ref, NoPreview: th.NoPreview}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.log.Warn(ctx, "thumbnail fetch failed", "file", fileID, "error", err)
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	p.cache.Set(key, out)
	return out, nil
}

// Cached returns a previously fetched result without touching the network,
// or nil when nothing definitive is cached for the file.
func (p *Poller) Cached(orderID, fileID string) *Result {
	return p.cache.Get(cacheKey(orderID, fileID))
}

// Forget drops the cached result for a file, e.g. after the file was
// deleted from the order.
func (p *Poller) Forget(orderID, fileID string) {
	p.cache.Delete(cacheKey(orderID, fileID))
}
