package orders

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/printdraft/internal/logging"
	"github.com/dmitrijs2005/printdraft/internal/server/storage/memory"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

// waitThumb polls until the thumbnail outcome is definitive.
func waitThumb(t *testing.T, s *Service, orderID, fileID string) (*string, bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ref, done, err := s.Thumbnail(context.Background(), orderID, fileID)
		require.NoError(t, err)
		if done {
			return ref, true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return nil, false
}

func TestRegister_ReturnsUploadURLForStorageKey(t *testing.T) {
	st := memory.New("http://localhost:8080")
	s := NewService(st, testLogger())

	f, uploadURL, err := s.Register(context.Background(), "ord-1", "doc.pdf", "application/pdf", 42)
	require.NoError(t, err)

	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "ord-1", f.OrderID)
	assert.True(t, strings.HasPrefix(f.StorageKey, "ord-1/"))
	assert.Equal(t, "http://localhost:8080/uploads/"+f.StorageKey, uploadURL)
}

func TestThumbnail_ImageLifecycle(t *testing.T) {
	st := memory.New("http://localhost:8080")
	s := NewService(st, testLogger())
	ctx := context.Background()

	f, _, err := s.Register(ctx, "ord-1", "pic.png", "image/png", 10)
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, f.StorageKey, testPNG(t)))

	// first request starts generation and reports "come back later"
	ref, done, err := s.Thumbnail(ctx, "ord-1", f.ID)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Nil(t, ref)

	ref, ok := waitThumb(t, s, "ord-1", f.ID)
	require.True(t, ok, "thumbnail never became ready")
	require.NotNil(t, ref)
	assert.Contains(t, *ref, ".thumb.png")

	// the preview object itself exists
	_, err = st.Get(ctx, f.StorageKey+".thumb.png")
	require.NoError(t, err)
}

func TestThumbnail_NonImageHasNoPreview(t *testing.T) {
	st := memory.New("http://localhost:8080")
	s := NewService(st, testLogger())
	ctx := context.Background()

	f, _, err := s.Register(ctx, "ord-1", "doc.pdf", "application/pdf", 10)
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, f.StorageKey, []byte("%PDF-1.4")))

	_, done, err := s.Thumbnail(ctx, "ord-1", f.ID)
	require.NoError(t, err)
	assert.False(t, done, "first request reports processing")

	ref, ok := waitThumb(t, s, "ord-1", f.ID)
	require.True(t, ok)
	assert.Nil(t, ref, "no preview for non-image types")
}

func TestThumbnail_RetriesWhenBytesArriveLate(t *testing.T) {
	st := memory.New("http://localhost:8080")
	s := NewService(st, testLogger())
	ctx := context.Background()

	f, _, err := s.Register(ctx, "ord-1", "pic.png", "image/png", 10)
	require.NoError(t, err)

	// bytes are not uploaded yet; generation fails and is retried later
	_, done, err := s.Thumbnail(ctx, "ord-1", f.ID)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, st.Put(ctx, f.StorageKey, testPNG(t)))

	ref, ok := waitThumb(t, s, "ord-1", f.ID)
	require.True(t, ok)
	require.NotNil(t, ref)
}

func TestThumbnail_UnknownFile(t *testing.T) {
	s := NewService(memory.New("http://localhost:8080"), testLogger())

	_, _, err := s.Thumbnail(context.Background(), "ord-1", "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_RemovesFileAndObjects(t *testing.T) {
	st := memory.New("http://localhost:8080")
	s := NewService(st, testLogger())
	ctx := context.Background()

	f, _, err := s.Register(ctx, "ord-1", "pic.png", "image/png", 10)
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, f.StorageKey, testPNG(t)))

	require.NoError(t, s.Delete(ctx, "ord-1", f.ID))

	_, _, err = s.Thumbnail(ctx, "ord-1", f.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Delete(ctx, "ord-1", f.ID), ErrNotFound)
}

func TestPapers_SnapshotIsUsable(t *testing.T) {
	papers := Papers()
	require.NotEmpty(t, papers)

	defaults := 0
	for _, p := range papers {
		require.NotEmpty(t, p.Variants)
		if p.IsDefaultSize {
			defaults++
		}
		for _, v := range p.Variants {
			assert.Equal(t, p.ID, v.PaperID)
			assert.Equal(t, p.Name, v.PaperName)
		}
	}
	assert.Equal(t, 1, defaults, "exactly one default size")
}
