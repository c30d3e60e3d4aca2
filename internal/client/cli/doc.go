// Package cli implements the interactive draft-order wizard.
//
// The wizard is a plain read-eval-print loop over stdin. It drives the draft
// controller: adding local files (which start background uploads), editing
// per-file page ranges, fetching thumbnails and checking whether the draft
// is ready for checkout. Wizard progress is persisted locally so an
// interrupted session can be resumed as long as the marker has not expired.
package cli
