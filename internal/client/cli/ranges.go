package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/printdraft/internal/client/draft"
	"github.com/dmitrijs2005/printdraft/internal/client/models"
)

// Ranges prints the page ranges configured for a file.
func (a *App) Ranges(_ context.Context, fileArg string) error {
	f, err := a.resolveFile(fileArg)
	if err != nil {
		return err
	}
	if len(f.Ranges) == 0 {
		printlnFn("No ranges yet. Use: addrange <file#>")
		return nil
	}

	for i, r := range f.Ranges {
		pages := "all pages"
		if !r.AllPages {
			pages = fmt.Sprintf("pages %q", r.Pages)
			if !r.PagesValid {
				pages += " (invalid)"
			}
		}
		variant := r.PaperVariantID
		if v, ok := a.controller.Catalog().Variant(r.PaperVariantID); ok {
			variant = fmt.Sprintf("%s / %s", v.PaperName, v.VariantName)
		}
		printlnFn(fmt.Sprintf("%2d. %-24s %-28s %-9s colour=%-5v duplex=%-5v copies=%d",
			i+1, pages, variant, r.Orientation, r.Colour, r.Duplex, r.Copies))
	}
	return nil
}

// AddRange appends a new range to a file.
func (a *App) AddRange(_ context.Context, fileArg string) error {
	f, err := a.resolveFile(fileArg)
	if err != nil {
		return err
	}
	if _, err := a.controller.AddRange(f.Key); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Added range to %s", f.Name))
	return nil
}

// EditRange applies field=value edits to a range. All edits in one command
// are validated and applied together.
func (a *App) EditRange(_ context.Context, fileArg, rangeArg string, fields []string) error {
	f, r, err := a.resolveRange(fileArg, rangeArg)
	if err != nil {
		return err
	}

	patch, err := parseRangePatch(fields)
	if err != nil {
		return err
	}

	if err := a.controller.UpdateRange(f.Key, r.Key, patch); err != nil {
		return err
	}
	printlnFn("Range updated")
	return nil
}

// RemoveRange removes a range after the user confirms.
func (a *App) RemoveRange(ctx context.Context, fileArg, rangeArg string) error {
	f, r, err := a.resolveRange(fileArg, rangeArg)
	if err != nil {
		return err
	}
	return a.controller.DeleteRange(ctx, f.Key, r.Key)
}

func (a *App) resolveRange(fileArg, rangeArg string) (models.DraftFile, models.RangeConfig, error) {
	f, err := a.resolveFile(fileArg)
	if err != nil {
		return models.DraftFile{}, models.RangeConfig{}, err
	}
	n, err := strconv.Atoi(rangeArg)
	if err != nil {
		return models.DraftFile{}, models.RangeConfig{}, fmt.Errorf("not a range number: %q", rangeArg)
	}
	if n < 1 || n > len(f.Ranges) {
		return models.DraftFile{}, models.RangeConfig{}, fmt.Errorf("no range #%d (have %d)", n, len(f.Ranges))
	}
	return f, f.Ranges[n-1], nil
}

// parseRangePatch turns "field=value" tokens into a draft.RangePatch.
//
// Supported fields:
//
//	all=true|false        pages=1-3,5        paper=<variant id>
//	orient=portrait|landscape
//	colour=true|false     duplex=true|false  copies=<n>
func parseRangePatch(fields []string) (draft.RangePatch, error) {
	var patch draft.RangePatch

	for _, field := range fields {
		name, value, ok := strings.Cut(field, "=")
		if !ok {
			return draft.RangePatch{}, fmt.Errorf("expected field=value, got %q", field)
		}

		switch name {
		case "all":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return draft.RangePatch{}, fmt.Errorf("all: %w", err)
			}
			patch.AllPages = &b

		case "pages":
			v := value
			patch.Pages = &v

		case "paper":
			v := value
			patch.PaperVariantID = &v

		case "orient":
			o := models.Orientation(value)
			patch.Orientation = &o

		case "colour", "color":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return draft.RangePatch{}, fmt.Errorf("colour: %w", err)
			}
			patch.Colour = &b

		case "duplex":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return draft.RangePatch{}, fmt.Errorf("duplex: %w", err)
			}
			patch.Duplex = &b

		case "copies":
			n, err := strconv.Atoi(value)
			if err != nil {
				return draft.RangePatch{}, fmt.Errorf("copies: %w", err)
			}
			patch.Copies = &n

		default:
			return draft.RangePatch{}, fmt.Errorf("unknown field %q", name)
		}
	}

	return patch, nil
}
