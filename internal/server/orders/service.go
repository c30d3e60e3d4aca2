// Package orders tracks registered files per order and produces their
// thumbnails.
package orders

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/printdraft/internal/logging"
	"github.com/dmitrijs2005/printdraft/internal/server/storage"
)

var ErrNotFound = errors.New("file not found")

// thumbSize is the bounding box of generated previews, in pixels.
const thumbSize = 256

type thumbState int

const (
	// thumbUnknown: nobody has asked for this thumbnail yet.
	thumbUnknown thumbState = iota
	// thumbProcessing: a generation goroutine is running.
	thumbProcessing
	// thumbReady: a preview exists; its URL is in File.thumbRef.
	thumbReady
	// thumbNone: this file type gets no preview. Terminal.
	thumbNone
)

// File is one registered upload within an order.
type File struct {
	ID         string
	OrderID    string
	Filename   string
	Filetype   string
	Filesize   int64
	StorageKey string

	thumb    thumbState
	thumbRef string
}

// Service owns the order/file registry. Thumbnails are generated lazily:
// the first thumbnail request kicks off a background goroutine and the
// caller is told to come back later.
type Service struct {
	storage storage.Storage
	log     logging.Logger

	mu    sync.Mutex
	files map[string]map[string]*File // orderID -> fileID -> file
}

func NewService(st storage.Storage, log logging.Logger) *Service {
	return &Service{
		storage: st,
		log:     log,
		files:   make(map[string]map[string]*File),
	}
}

// Register records a new file under an order and returns it together with
// the URL its bytes must be uploaded to.
func (s *Service) Register(ctx context.Context, orderID, filename, filetype string, filesize int64) (*File, string, error) {
	id := uuid.NewString()
	key := orderID + "/" + id

	uploadURL, err := s.storage.UploadURL(ctx, key)
	if err != nil {
		return nil, "", err
	}

	f := &File{
		ID:         id,
		OrderID:    orderID,
		Filename:   filename,
		Filetype:   filetype,
		Filesize:   filesize,
		StorageKey: key,
	}

	s.mu.Lock()
	if s.files[orderID] == nil {
		s.files[orderID] = make(map[string]*File)
	}
	s.files[orderID][id] = f
	s.mu.Unlock()

	return f, uploadURL, nil
}

// Delete removes a file from the order and drops its stored bytes and
// preview. Unknown ids return ErrNotFound.
func (s *Service) Delete(ctx context.Context, orderID, fileID string) error {
	s.mu.Lock()
	f, ok := s.files[orderID][fileID]
	if ok {
		delete(s.files[orderID], fileID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	if err := s.storage.Delete(ctx, f.StorageKey); err != nil {
		s.log.Error(ctx, "error deleting object", "key", f.StorageKey, "error", err)
	}
	if err := s.storage.Delete(ctx, thumbKey(f.StorageKey)); err != nil {
		s.log.Error(ctx, "error deleting thumbnail", "key", f.StorageKey, "error", err)
	}
	return nil
}

// Thumbnail reports the preview status of a file.
//
// Returns (ref, true, nil) once a preview exists, (nil, true, nil) for file
// types that never get one, and (nil, false, nil) while generation is in
// progress. The first call for a file starts generation.
func (s *Service) Thumbnail(ctx context.Context, orderID, fileID string) (*string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[orderID][fileID]
	if !ok {
		return nil, false, ErrNotFound
	}

	switch f.thumb {
	case thumbReady:
		ref := f.thumbRef
		return &ref, true, nil
	case thumbNone:
		return nil, true, nil
	case thumbProcessing:
		return nil, false, nil
	default:
		f.thumb = thumbProcessing
		go s.generate(f)
		return nil, false, nil
	}
}

// generate renders the preview for f and records the outcome. Runs outside
// the request that triggered it.
func (s *Service) generate(f *File) {
	ctx := context.Background()

	state, ref := s.render(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	// the file may have been deleted while rendering
	if current, ok := s.files[f.OrderID][f.ID]; !ok || current != f {
		return
	}
	f.thumb = state
	f.thumbRef = ref
}

func (s *Service) render(ctx context.Context, f *File) (thumbState, string) {
	if !strings.HasPrefix(f.Filetype, "image/") {
		return thumbNone, ""
	}

	data, err := s.storage.Get(ctx, f.StorageKey)
	if err != nil {
		// bytes not uploaded yet; retry on the next request
		s.log.Info(ctx, "thumbnail source not ready", "key", f.StorageKey, "error", err)
		return thumbUnknown, ""
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		s.log.Error(ctx, "error decoding image", "key", f.StorageKey, "error", err)
		return thumbNone, ""
	}

	thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		s.log.Error(ctx, "error encoding thumbnail", "key", f.StorageKey, "error", err)
		return thumbNone, ""
	}

	key := thumbKey(f.StorageKey)
	if err := s.storage.Put(ctx, key, buf.Bytes()); err != nil {
		s.log.Error(ctx, "error storing thumbnail", "key", key, "error", err)
		return thumbUnknown, ""
	}

	ref, err := s.storage.FetchURL(ctx, key)
	if err != nil {
		s.log.Error(ctx, "error building thumbnail url", "key", key, "error", err)
		return thumbUnknown, ""
	}

	return thumbReady, ref
}

func thumbKey(storageKey string) string {
	return storageKey + ".thumb.png"
}
