// Package catalog holds the read-only paper/variant snapshot used when
// configuring page ranges. It is fetched once per session and shared freely
// afterwards; nothing in this package mutates it.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/printdraft/internal/client/api"
	"github.com/dmitrijs2005/printdraft/internal/client/models"
)

var ErrEmptyCatalog = errors.New("paper catalog is empty")

// Catalog indexes the paper snapshot for the lookups the range configurator
// needs: variant by id, available variants of one size, and defaults.
type Catalog struct {
	papers    []models.Paper
	byVariant map[string]models.PaperVariant
}

// Load fetches the snapshot from the backend and indexes it.
func Load(ctx context.Context, client api.Client) (*Catalog, error) {
	papers, err := client.Papers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading paper catalog: %w", err)
	}
	return New(papers)
}

// New indexes an already-fetched snapshot. A catalog without any available
// variant is unusable and rejected up front.
func New(papers []models.Paper) (*Catalog, error) {
	c := &Catalog{
		papers:    papers,
		byVariant: make(map[string]models.PaperVariant),
	}
	available := 0
	for _, p := range papers {
		for _, v := range p.Variants {
			c.byVariant[v.ID] = v
			if v.IsAvailable {
				available++
			}
		}
	}
	if available == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// Papers returns the snapshot in server order.
func (c *Catalog) Papers() []models.Paper {
	return c.papers
}

// Variant resolves a variant id. The second result is false for ids that are
// not part of the snapshot.
func (c *Catalog) Variant(id string) (models.PaperVariant, bool) {
	v, ok := c.byVariant[id]
	return v, ok
}

// VariantsForPaper returns the available variants of one physical size, in
// server order. This is the "allowed set" once a file's first range has
// fixed its paper size.
func (c *Catalog) VariantsForPaper(paperID string) []models.PaperVariant {
	var out []models.PaperVariant
	for _, p := range c.papers {
		if p.ID != paperID {
			continue
		}
		for _, v := range p.Variants {
			if v.IsAvailable {
				out = append(out, v)
			}
		}
	}
	return out
}

// AvailableVariants returns every available variant across all sizes.
func (c *Catalog) AvailableVariants() []models.PaperVariant {
	var out []models.PaperVariant
	for _, p := range c.papers {
		for _, v := range p.Variants {
			if v.IsAvailable {
				out = append(out, v)
			}
		}
	}
	return out
}

// DefaultVariant picks the variant a file's first range starts with: the
// first available variant of the default-size paper, falling back to the
// first available variant overall when no paper is flagged as default.
func (c *Catalog) DefaultVariant() (models.PaperVariant, error) {
	for _, p := range c.papers {
		if !p.IsDefaultSize {
			continue
		}
		for _, v := range p.Variants {
			if v.IsAvailable {
				return v, nil
			}
		}
	}
	for _, p := range c.papers {
		for _, v := range p.Variants {
			if v.IsAvailable {
				return v, nil
			}
		}
	}
	return models.PaperVariant{}, ErrEmptyCatalog
}

// DefaultVariantForPaper picks the variant a follow-up range starts with
// once the file's size is fixed: the first available variant of that size.
func (c *Catalog) DefaultVariantForPaper(paperID string) (models.PaperVariant, error) {
	variants := c.VariantsForPaper(paperID)
	if len(variants) == 0 {
		return models.PaperVariant{}, fmt.Errorf("%w: no available variants for paper %s", ErrEmptyCatalog, paperID)
	}
	return variants[0], nil
}
