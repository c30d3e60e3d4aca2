package draft

import "errors"

var (
	// ErrTooManyFiles rejects a whole AddFiles batch that would push the
	// tracked file count past MaxFiles. No file of the batch is admitted.
	ErrTooManyFiles = errors.New("file limit exceeded")

	// ErrUnknownFile and ErrUnknownRange mark operations on entities that
	// are not (or no longer) part of the tree.
	ErrUnknownFile  = errors.New("unknown file")
	ErrUnknownRange = errors.New("unknown range")

	// ErrNotUploaded guards operations that require the file's bytes to be
	// on the server, such as deletion and thumbnail retrieval.
	ErrNotUploaded = errors.New("file is not uploaded")

	// ErrNotFailed guards Retry: only a failed transfer can be retried.
	ErrNotFailed = errors.New("transfer has not failed")

	// ErrRangeIncomplete blocks adding a range while another range of the
	// same file is still the all-pages sentinel or grammar-invalid.
	ErrRangeIncomplete = errors.New("another range is still incomplete")

	// ErrVariantNotAllowed rejects a paper variant that is unknown,
	// unavailable, or of a different physical size than the file's first
	// range once the file has more than one range.
	ErrVariantNotAllowed = errors.New("paper variant not allowed")

	// ErrAllPagesNotAllowed rejects switching a range to the all-pages
	// sentinel while sibling ranges exist.
	ErrAllPagesNotAllowed = errors.New("all-pages is only valid for a file's sole range")

	// ErrCopiesOutOfRange rejects copy counts outside [1, models.MaxCopies].
	ErrCopiesOutOfRange = errors.New("copy count out of range")

	// ErrInvalidOrientation rejects unknown orientation values.
	ErrInvalidOrientation = errors.New("invalid orientation")
)
