// Package models defines the draft-order types shared by the client packages.
package models

// TransferState tracks where a draft file is in its upload lifecycle.
//
// Transitions are monotonic (Pending → Uploading → Uploaded | Failed) except
// that a user-initiated retry moves Failed back to Uploading. Uploaded is
// terminal for the transfer; the record itself is removed only by an explicit
// delete.
type TransferState string

const (
	TransferPending   TransferState = "pending"
	TransferUploading TransferState = "uploading"
	TransferUploaded  TransferState = "uploaded"
	TransferFailed    TransferState = "failed"
)

// Orientation of a printed page.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// MaxCopies bounds the per-range copy count.
const MaxCopies = 99

// DraftFile is one document the user intends to submit with the order.
//
// Invariant: RemoteID is non-empty if and only if State == TransferUploaded.
type DraftFile struct {
	Key      string
	Name     string
	Size     int64
	MimeType string

	State      TransferState
	Progress   int    // 0..100, meaningful only while State == TransferUploading
	RemoteID   string // server-side file id, set on successful upload
	FailReason string

	// Ranges is ordered; the first range seeds the paper-size constraint
	// for every range added after it.
	Ranges []RangeConfig

	// Expanded is presentation state only (detail panel open in the UI).
	Expanded bool
}

// Uploaded reports whether the file's bytes are on the server.
func (f *DraftFile) Uploaded() bool {
	return f.State == TransferUploaded
}

// Range returns the range with the given key, or nil.
func (f *DraftFile) Range(key string) *RangeConfig {
	for i := range f.Ranges {
		if f.Ranges[i].Key == key {
			return &f.Ranges[i]
		}
	}
	return nil
}

// RangeConfig is one page-range print job within a file: which pages to
// print and how.
//
// The page spec is either the AllPages sentinel (valid only while it is the
// file's sole range) or a raw user-entered string in Pages with PagesValid
// derived from the range grammar.
type RangeConfig struct {
	Key string

	AllPages   bool
	Pages      string
	PagesValid bool

	PaperVariantID string
	Orientation    Orientation
	Colour         bool
	Duplex         bool
	Copies         int

	// Expanded is presentation state only.
	Expanded bool
}

// Complete reports whether the range is usable for submission.
func (r *RangeConfig) Complete() bool {
	return r.AllPages || r.PagesValid
}
