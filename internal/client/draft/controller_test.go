package draft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/printdraft/internal/client/api"
	"github.com/dmitrijs2005/printdraft/internal/client/models"
)

// fullFakeAPI extends fakeAPI with the catalog and thumbnail endpoints the
// controller needs.
type fullFakeAPI struct {
	*fakeAPI
	papers     []models.Paper
	papersErr  error
	thumbState map[string][]func() (*api.Thumbnail, error)
}

func (f *fullFakeAPI) Papers(ctx context.Context) ([]models.Paper, error) {
	return f.papers, f.papersErr
}

func (f *fullFakeAPI) Thumbnail(ctx context.Context, orderID, fileID string) (*api.Thumbnail, error) {
	script := f.thumbState[fileID]
	if len(script) == 0 {
		return nil, api.ErrNotFound
	}
	next := script[0]
	if len(script) > 1 {
		f.thumbState[fileID] = script[1:]
	}
	return next()
}

func catalogPapers() []models.Paper {
	return []models.Paper{{
		ID: "a4", Name: "A4", IsDefaultSize: true,
		Variants: []models.PaperVariant{
			{ID: "a4-80", PaperID: "a4", PaperName: "A4", VariantName: "80 g/m²", IsDefaultSize: true, IsAvailable: true},
		},
	}}
}

func newTestController(t *testing.T) (*Controller, *fullFakeAPI) {
	t.Helper()
	srv := uploadServer(t)
	fa := &fullFakeAPI{
		fakeAPI:    &fakeAPI{uploadBase: srv.URL},
		papers:     catalogPapers(),
		thumbState: map[string][]func() (*api.Thumbnail, error){},
	}

	c, err := NewController(context.Background(), "ord-1", fa, &fakeDialog{answer: true}, testLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, fa
}

func TestNewController_CatalogLoadFailure(t *testing.T) {
	fa := &fullFakeAPI{fakeAPI: &fakeAPI{}, papersErr: api.ErrUnavailable}
	_, err := NewController(context.Background(), "ord-1", fa, &fakeDialog{}, testLogger())
	assert.ErrorIs(t, err, api.ErrUnavailable)
}

func TestController_ThumbnailRequiresUploadedFile(t *testing.T) {
	c, _ := newTestController(t)

	_, err := c.Thumbnail(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownFile)

	fk := addUploadedFile(t, c.Store, "a.pdf")
	c.mu.Lock()
	c.fileLocked(fk).State = models.TransferFailed
	c.mu.Unlock()

	_, err = c.Thumbnail(context.Background(), fk)
	assert.ErrorIs(t, err, ErrNotUploaded)
}

func TestController_ThumbnailPollsUntilReady(t *testing.T) {
	c, fa := newTestController(t)
	fk := addUploadedFile(t, c.Store, "a.pdf")

	fa.thumbState["remote-a.pdf"] = []func() (*api.Thumbnail, error){
		func() (*api.Thumbnail, error) { return nil, api.ErrProcessing },
		func() (*api.Thumbnail, error) { return &api.Thumbnail{Ref: "img"}, nil },
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := c.Thumbnail(ctx, fk)
	require.NoError(t, err)
	assert.Equal(t, "img", res.Ref)
}

func TestController_DeleteFileForgetsThumbnail(t *testing.T) {
	c, fa := newTestController(t)
	fk := addUploadedFile(t, c.Store, "a.pdf")

	fa.thumbState["remote-a.pdf"] = []func() (*api.Thumbnail, error){
		func() (*api.Thumbnail, error) { return &api.Thumbnail{NoPreview: true}, nil },
	}

	_, err := c.Thumbnail(context.Background(), fk)
	require.NoError(t, err)
	require.NotNil(t, c.poller.Cached("ord-1", "remote-a.pdf"))

	require.NoError(t, c.DeleteFile(context.Background(), fk))
	assert.Nil(t, c.poller.Cached("ord-1", "remote-a.pdf"))
}

func TestController_CanAdvanceDelegatesToReadiness(t *testing.T) {
	c, _ := newTestController(t)
	assert.False(t, c.CanAdvance())

	fk := addUploadedFile(t, c.Store, "a.pdf")
	_, err := c.AddRange(fk)
	require.NoError(t, err)

	assert.True(t, c.CanAdvance())
}
