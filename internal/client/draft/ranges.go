package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/printdraft/internal/client/models"
	"github.com/dmitrijs2005/printdraft/internal/client/rangespec"
)

// RangePatch is a partial update for one range. Nil fields are left alone.
type RangePatch struct {
	AllPages       *bool
	Pages          *string
	PaperVariantID *string
	Orientation    *models.Orientation
	Colour         *bool
	Duplex         *bool
	Copies         *int
	Expanded       *bool
}

// AddRange appends a new range to a file and returns its key.
//
// Adding is blocked while any existing range of the file is still the
// all-pages sentinel or grammar-invalid: there may be at most one
// unresolved range at a time, otherwise page coverage would be ambiguous.
//
// The first range of a file defaults to all pages on the catalog's default
// variant. Later ranges default to an empty (invalid) page string on the
// default variant of the size the first range fixed.
func (s *Store) AddRange(fileKey string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.fileLocked(fileKey)
	if f == nil {
		return "", ErrUnknownFile
	}

	for i := range f.Ranges {
		if !f.Ranges[i].Complete() || f.Ranges[i].AllPages {
			return "", fmt.Errorf("%w: range %s", ErrRangeIncomplete, f.Ranges[i].Key)
		}
	}

	rc := models.RangeConfig{
		Key:         uuid.NewString(),
		Orientation: models.OrientationPortrait,
		Copies:      1,
		Expanded:    true,
	}

	if len(f.Ranges) == 0 {
		v, err := s.catalog.DefaultVariant()
		if err != nil {
			return "", err
		}
		rc.AllPages = true
		rc.PaperVariantID = v.ID
	} else {
		first, ok := s.catalog.Variant(f.Ranges[0].PaperVariantID)
		if !ok {
			return "", fmt.Errorf("%w: first range variant %s not in catalog",
				ErrVariantNotAllowed, f.Ranges[0].PaperVariantID)
		}
		v, err := s.catalog.DefaultVariantForPaper(first.PaperID)
		if err != nil {
			return "", err
		}
		rc.PaperVariantID = v.ID
	}

	f.Ranges = append(f.Ranges, rc)
	return rc.Key, nil
}

// UpdateRange merges patch into one range. The whole patch is validated
// before anything is applied, so a rejected update changes nothing.
//
// A pages change always re-derives validity through the range grammar. A
// variant change must come from the allowed set: available, and of the same
// physical size as the file's first range once the file has several ranges.
func (s *Store) UpdateRange(fileKey, rangeKey string, patch RangePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.fileLocked(fileKey)
	if f == nil {
		return ErrUnknownFile
	}
	r := f.Range(rangeKey)
	if r == nil {
		return ErrUnknownRange
	}

	if patch.Copies != nil && (*patch.Copies < 1 || *patch.Copies > models.MaxCopies) {
		return fmt.Errorf("%w: %d", ErrCopiesOutOfRange, *patch.Copies)
	}

	if patch.Orientation != nil &&
		*patch.Orientation != models.OrientationPortrait &&
		*patch.Orientation != models.OrientationLandscape {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, *patch.Orientation)
	}

	if patch.AllPages != nil && *patch.AllPages && len(f.Ranges) > 1 {
		return ErrAllPagesNotAllowed
	}

	if patch.PaperVariantID != nil {
		v, ok := s.catalog.Variant(*patch.PaperVariantID)
		if !ok || !v.IsAvailable {
			return fmt.Errorf("%w: %s", ErrVariantNotAllowed, *patch.PaperVariantID)
		}
		if len(f.Ranges) > 1 {
			first, ok := s.catalog.Variant(f.Ranges[0].PaperVariantID)
			if !ok {
				return fmt.Errorf("%w: first range variant %s not in catalog",
					ErrVariantNotAllowed, f.Ranges[0].PaperVariantID)
			}
			if v.PaperID != first.PaperID {
				return fmt.Errorf("%w: %s is %s, file is fixed to %s",
					ErrVariantNotAllowed, v.ID, v.PaperID, first.PaperID)
			}
		}
	}

	// Validation passed; apply the whole patch.
	if patch.AllPages != nil {
		r.AllPages = *patch.AllPages
		if r.AllPages {
			r.Pages = ""
			r.PagesValid = false
		}
	}
	if patch.Pages != nil {
		// Supplying a page string always leaves sentinel mode; the string
		// starts invalid until the grammar accepts it.
		r.AllPages = false
		r.Pages = *patch.Pages
		r.PagesValid = rangespec.Parse(r.Pages).Valid
	}
	if patch.PaperVariantID != nil {
		r.PaperVariantID = *patch.PaperVariantID
	}
	if patch.Orientation != nil {
		r.Orientation = *patch.Orientation
	}
	if patch.Colour != nil {
		r.Colour = *patch.Colour
	}
	if patch.Duplex != nil {
		r.Duplex = *patch.Duplex
	}
	if patch.Copies != nil {
		r.Copies = *patch.Copies
	}
	if patch.Expanded != nil {
		r.Expanded = *patch.Expanded
	}
	return nil
}

// DeleteRange removes one range after the dialog collaborator confirms.
// A declined confirmation is not an error; the range simply stays.
// Sibling ranges are not re-validated: grammar validity is per-range, and
// the size invariant is enforced on future edits, not retroactively.
func (s *Store) DeleteRange(ctx context.Context, fileKey, rangeKey string) error {
	s.mu.Lock()
	f := s.fileLocked(fileKey)
	if f == nil {
		s.mu.Unlock()
		return ErrUnknownFile
	}
	r := f.Range(rangeKey)
	if r == nil {
		s.mu.Unlock()
		return ErrUnknownRange
	}
	name := f.Name
	s.mu.Unlock()

	if !s.dialog.Confirm(ctx, fmt.Sprintf("Delete this page range of %q?", name)) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-find: the tree may have changed while the dialog was open.
	f = s.fileLocked(fileKey)
	if f == nil {
		return ErrUnknownFile
	}
	for i := range f.Ranges {
		if f.Ranges[i].Key == rangeKey {
			f.Ranges = append(f.Ranges[:i], f.Ranges[i+1:]...)
			return nil
		}
	}
	return ErrUnknownRange
}

// AllowedVariants returns the variant set a range of the file may use:
// every available variant while the file has no ranges, and only the
// variants of the first range's physical size afterwards.
func (s *Store) AllowedVariants(fileKey string) ([]models.PaperVariant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.fileLocked(fileKey)
	if f == nil {
		return nil, ErrUnknownFile
	}
	if len(f.Ranges) == 0 {
		return s.catalog.AvailableVariants(), nil
	}
	first, ok := s.catalog.Variant(f.Ranges[0].PaperVariantID)
	if !ok {
		return nil, fmt.Errorf("%w: first range variant %s not in catalog",
			ErrVariantNotAllowed, f.Ranges[0].PaperVariantID)
	}
	return s.catalog.VariantsForPaper(first.PaperID), nil
}
