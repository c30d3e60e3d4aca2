package draft

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/printdraft/internal/client/api"
	"github.com/dmitrijs2005/printdraft/internal/client/catalog"
	"github.com/dmitrijs2005/printdraft/internal/client/thumbs"
	"github.com/dmitrijs2005/printdraft/internal/logging"
)

// Controller is what the surrounding wizard holds: the draft store plus the
// session-scoped collaborators it composes (paper catalog, thumbnail
// poller). Its lifecycle is tied to the wizard stage — construct it when
// the upload stage mounts, Close it on teardown.
type Controller struct {
	*Store
	poller  *thumbs.Poller
	catalog *catalog.Catalog
}

// NewController loads the paper catalog and assembles the engine for one
// order. The dialog collaborator confirms destructive actions.
func NewController(ctx context.Context, orderID string, client api.Client, dialog Dialog, log logging.Logger) (*Controller, error) {
	cat, err := catalog.Load(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("initializing draft engine: %w", err)
	}
	return &Controller{
		Store:   NewStore(orderID, client, cat, dialog, log),
		poller:  thumbs.New(client, log),
		catalog: cat,
	}, nil
}

// Catalog exposes the immutable paper snapshot for presentation.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// CanAdvance is the readiness predicate the wizard consults before letting
// the user move to the next stage.
func (c *Controller) CanAdvance() bool { return c.Ready() }

// Thumbnail resolves the preview for an uploaded file, polling until the
// server has generated it or ctx is cancelled. The caller scopes ctx to its
// view so navigating away stops the poll.
func (c *Controller) Thumbnail(ctx context.Context, fileKey string) (*thumbs.Result, error) {
	f, ok := c.File(fileKey)
	if !ok {
		return nil, ErrUnknownFile
	}
	if !f.Uploaded() {
		return nil, fmt.Errorf("%w: state %s", ErrNotUploaded, f.State)
	}
	return c.poller.Fetch(ctx, c.OrderID(), f.RemoteID)
}

// DeleteFile removes the file from the order and drops its cached
// thumbnail result.
func (c *Controller) DeleteFile(ctx context.Context, fileKey string) error {
	f, ok := c.File(fileKey)
	if !ok {
		return ErrUnknownFile
	}
	if err := c.Store.DeleteFile(ctx, fileKey); err != nil {
		return err
	}
	if f.RemoteID != "" {
		c.poller.Forget(c.OrderID(), f.RemoteID)
	}
	return nil
}
