package api

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/printdraft/internal/client/models"
)

var (
	// ErrProcessing means a thumbnail is still being generated (HTTP 202).
	ErrProcessing = errors.New("thumbnail still processing")

	// ErrNotFound means the order or file does not exist on the server.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrServer covers any other non-2xx response.
	ErrServer = errors.New("server error")
)

// FileRegistration announces an intent to upload one file.
type FileRegistration struct {
	Filename string `json:"filename"`
	Filetype string `json:"filetype"`
	Filesize int64  `json:"filesize"`
}

// FileDestination is the server's answer to a registration: the file's
// remote id and a pre-authorized destination for the raw byte transfer.
type FileDestination struct {
	ID        string `json:"id"`
	UploadURL string `json:"uploadUrl"`
}

// Thumbnail is a definitive thumbnail answer. NoPreview marks file types
// the server will never render a preview for; it is distinct from an error
// and callers should cache it like a success.
type Thumbnail struct {
	Ref       string
	NoPreview bool
}

// Client is the transport-agnostic contract with the order backend.
//
// Contract:
//   - RegisterFile: POST /orders/{orderID}/files, returns id + upload URL.
//   - DeleteFile:   DELETE /orders/{orderID}/files/{fileID}, 204 on success.
//   - Thumbnail:    GET .../thumbnail; ErrProcessing while the artifact is
//     still being generated, otherwise a definitive Thumbnail.
//   - Papers:       GET /opts/papers, the immutable paper/variant snapshot.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	RegisterFile(ctx context.Context, orderID string, reg FileRegistration) (*FileDestination, error)
	DeleteFile(ctx context.Context, orderID, fileID string) error
	Thumbnail(ctx context.Context, orderID, fileID string) (*Thumbnail, error)
	Papers(ctx context.Context) ([]models.Paper, error)
}
