package draft

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/printdraft/internal/client/api"
	"github.com/dmitrijs2005/printdraft/internal/client/catalog"
	"github.com/dmitrijs2005/printdraft/internal/client/models"
	"github.com/dmitrijs2005/printdraft/internal/client/transfer"
	"github.com/dmitrijs2005/printdraft/internal/logging"
)

// MaxFiles is the ceiling on concurrently tracked draft files per order.
const MaxFiles = 30

// FileSource is one locally selected file handed to AddFiles.
type FileSource struct {
	Name     string
	Size     int64
	MimeType string
	Data     []byte
}

// Dialog is the external confirmation collaborator for destructive actions.
type Dialog interface {
	Confirm(ctx context.Context, prompt string) bool
}

// inflight identifies one transfer attempt. Callbacks carry the pointer and
// the store compares it against the current attempt for the file, so a
// cancelled or superseded attempt can never mutate state.
type inflight struct {
	cancel context.CancelFunc
}

// Store holds the draft files and their range configurations. All exported
// methods are safe for concurrent use; the mutex makes the store
// single-writer, mirroring the one-reducer-at-a-time model of the UI it
// backs.
type Store struct {
	api     api.Client
	catalog *catalog.Catalog
	dialog  Dialog
	log     logging.Logger
	orderID string

	mu        sync.Mutex
	files     []*models.DraftFile
	transfers map[string]*inflight
	payloads  map[string][]byte // retained until uploaded, for retries
	closed    bool

	wg sync.WaitGroup

	httpClient *http.Client // transport for uploads, overridable in tests
}

func NewStore(orderID string, client api.Client, cat *catalog.Catalog, dialog Dialog, log logging.Logger) *Store {
	return &Store{
		api:        client,
		catalog:    cat,
		dialog:     dialog,
		log:        log.With("order", orderID),
		orderID:    orderID,
		transfers:  make(map[string]*inflight),
		payloads:   make(map[string][]byte),
		httpClient: http.DefaultClient,
	}
}

// OrderID returns the order this store builds.
func (s *Store) OrderID() string { return s.orderID }

// AddFiles admits a batch of files and starts one upload per file. The
// whole batch is rejected when it would exceed MaxFiles; otherwise every
// file is tracked immediately and its transfer begins. The returned keys
// follow the input order.
func (s *Store) AddFiles(sources []FileSource) ([]string, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.files)+len(sources) > MaxFiles {
		return nil, fmt.Errorf("%w: %d tracked, %d requested, limit %d",
			ErrTooManyFiles, len(s.files), len(sources), MaxFiles)
	}

	keys := make([]string, 0, len(sources))
	for _, src := range sources {
		f := &models.DraftFile{
			Key:      uuid.NewString(),
			Name:     src.Name,
			Size:     src.Size,
			MimeType: src.MimeType,
			State:    models.TransferPending,
		}
		s.files = append(s.files, f)
		s.payloads[f.Key] = src.Data
		keys = append(keys, f.Key)
		s.startTransferLocked(f)
	}
	return keys, nil
}

// Retry restarts the upload of a failed file with the originally captured
// bytes. There is no automatic retry; this is the explicit user action.
func (s *Store) Retry(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.fileLocked(key)
	if f == nil {
		return ErrUnknownFile
	}
	if f.State != models.TransferFailed {
		return fmt.Errorf("%w: state %s", ErrNotFailed, f.State)
	}
	s.startTransferLocked(f)
	return nil
}

// DeleteFile removes an uploaded file and its ranges. The remote copy is
// deleted first; when that fails the local record is left untouched so the
// user can try again.
func (s *Store) DeleteFile(ctx context.Context, key string) error {
	s.mu.Lock()
	f := s.fileLocked(key)
	if f == nil {
		s.mu.Unlock()
		return ErrUnknownFile
	}
	if !f.Uploaded() {
		s.mu.Unlock()
		return fmt.Errorf("%w: state %s", ErrNotUploaded, f.State)
	}
	remoteID := f.RemoteID
	s.mu.Unlock()

	// Network call happens outside the lock; the file cannot regress out
	// of Uploaded meanwhile, only vanish via a concurrent delete, which
	// removeFileLocked below tolerates.
	if err := s.api.DeleteFile(ctx, s.orderID, remoteID); err != nil {
		return fmt.Errorf("deleting remote file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFileLocked(key)
	s.log.Info(ctx, "draft file deleted", "file", key, "remote", remoteID)
	return nil
}

// File returns a copy of one draft file.
func (s *Store) File(key string) (models.DraftFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.fileLocked(key)
	if f == nil {
		return models.DraftFile{}, false
	}
	return copyFile(f), true
}

// Files returns a snapshot of all draft files in insertion order.
func (s *Store) Files() []models.DraftFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.DraftFile, 0, len(s.files))
	for _, f := range s.files {
		out = append(out, copyFile(f))
	}
	return out
}

// TransfersInFlight reports how many uploads have not yet resolved.
func (s *Store) TransfersInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transfers)
}

// Ready is the wizard's advance gate: at least one file, every file
// uploaded, every file configured with at least one complete range.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.files) == 0 {
		return false
	}
	for _, f := range s.files {
		if !f.Uploaded() || len(f.Ranges) == 0 {
			return false
		}
		for i := range f.Ranges {
			if !f.Ranges[i].Complete() {
				return false
			}
		}
	}
	return true
}

// Wait blocks until every transfer started so far has resolved or ctx is
// cancelled. It does not cancel the transfers themselves.
func (s *Store) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close aborts all in-flight transfers and waits for their goroutines to
// drain. Results arriving after Close are discarded by the identity guard.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	for key, in := range s.transfers {
		in.cancel()
		delete(s.transfers, key)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// startTransferLocked moves a file into Uploading and spawns its transfer
// goroutine. Caller holds s.mu.
func (s *Store) startTransferLocked(f *models.DraftFile) {
	if s.closed {
		return
	}

	f.State = models.TransferUploading
	f.Progress = 0
	f.FailReason = ""

	tctx, cancel := context.WithCancel(context.Background())
	in := &inflight{cancel: cancel}
	s.transfers[f.Key] = in

	key, name, mime, size := f.Key, f.Name, f.MimeType, f.Size
	payload := s.payloads[key]

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.runTransfer(tctx, in, key, name, mime, size, payload)
	}()
}

func (s *Store) runTransfer(ctx context.Context, in *inflight, key, name, mime string, size int64, payload []byte) {
	dest, err := s.api.RegisterFile(ctx, s.orderID, api.FileRegistration{
		Filename: name,
		Filetype: mime,
		Filesize: size,
	})
	if err != nil {
		s.finishTransfer(ctx, in, key, "", fmt.Errorf("registering file: %w", err))
		return
	}

	tr := transfer.New(
		transfer.Destination{URL: dest.UploadURL},
		payload,
		func(percent int) { s.applyProgress(in, key, percent) },
	).WithHTTPClient(s.httpClient)

	s.finishTransfer(ctx, in, key, dest.ID, tr.Run(ctx))
}

// applyProgress records a progress event. It is a no-op when the attempt is
// no longer current (file deleted, store closed, transfer already terminal
// or superseded by a retry).
func (s *Store) applyProgress(in *inflight, key string, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transfers[key] != in {
		return
	}
	f := s.fileLocked(key)
	if f == nil || f.State != models.TransferUploading {
		return
	}
	f.Progress = percent
}

// finishTransfer applies a terminal transfer result under the same identity
// guard as progress events.
func (s *Store) finishTransfer(ctx context.Context, in *inflight, key, remoteID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transfers[key] != in {
		// Stale completion: the file is gone or the attempt was cancelled.
		s.log.Debug(ctx, "discarding stale transfer result", "file", key)
		return
	}
	delete(s.transfers, key)

	f := s.fileLocked(key)
	if f == nil {
		return
	}

	if err != nil {
		f.State = models.TransferFailed
		f.Progress = 0
		f.FailReason = err.Error()
		s.log.Warn(ctx, "upload failed", "file", key, "name", f.Name, "error", err)
		return
	}

	f.State = models.TransferUploaded
	f.Progress = 0
	f.RemoteID = remoteID
	f.Expanded = true // open the detail panel once the upload lands
	delete(s.payloads, key)
	s.log.Info(ctx, "upload complete", "file", key, "name", f.Name, "remote", remoteID)
}

func (s *Store) fileLocked(key string) *models.DraftFile {
	for _, f := range s.files {
		if f.Key == key {
			return f
		}
	}
	return nil
}

func (s *Store) removeFileLocked(key string) {
	for i, f := range s.files {
		if f.Key != key {
			continue
		}
		s.files = append(s.files[:i], s.files[i+1:]...)
		break
	}
	if in, ok := s.transfers[key]; ok {
		in.cancel()
		delete(s.transfers, key)
	}
	delete(s.payloads, key)
}

func copyFile(f *models.DraftFile) models.DraftFile {
	out := *f
	out.Ranges = make([]models.RangeConfig, len(f.Ranges))
	copy(out.Ranges, f.Ranges)
	return out
}
