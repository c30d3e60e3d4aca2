package cli

import (
	"context"
	"errors"
	"fmt"
)

// Thumb fetches (and waits for) a file's thumbnail. The first request for a
// freshly uploaded file may take a while; the server is polled until it has
// finished processing.
func (a *App) Thumb(ctx context.Context, fileArg string) error {
	f, err := a.resolveFile(fileArg)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Fetching thumbnail for %s ...", f.Name))
	res, err := a.controller.Thumbnail(ctx, f.Key)
	if err != nil {
		return err
	}
	if res.NoPreview {
		printlnFn("No preview available for this file type")
		return nil
	}
	printlnFn("Thumbnail:", res.Ref)
	return nil
}

// Papers lists the purchasable paper variants.
func (a *App) Papers(_ context.Context) error {
	for _, v := range a.controller.Catalog().AvailableVariants() {
		def := ""
		if v.IsDefaultSize {
			def = " (default size)"
		}
		printlnFn(fmt.Sprintf("%-12s %s / %s%s", v.ID, v.PaperName, v.VariantName, def))
	}
	return nil
}

// Status summarizes the draft and whether it is ready for checkout.
func (a *App) Status(ctx context.Context) error {
	if err := a.List(ctx); err != nil {
		return err
	}

	printlnFn("Order:", a.controller.OrderID())
	if n := a.controller.TransfersInFlight(); n > 0 {
		printlnFn(fmt.Sprintf("Uploads in flight: %d", n))
	}
	if a.controller.CanAdvance() {
		printlnFn("Draft is ready for checkout")
	} else {
		printlnFn("Draft is not ready yet")
	}
	return nil
}

var errNotReady = errors.New("draft is not ready")

// Next advances the wizard: from file selection to range editing once all
// uploads have finished, and from range editing to checkout once every range
// is complete.
func (a *App) Next(ctx context.Context) error {
	switch a.stage {
	case StageFiles:
		files := a.controller.Files()
		if len(files) == 0 {
			return fmt.Errorf("%w: add at least one file", errNotReady)
		}
		if a.controller.TransfersInFlight() > 0 {
			return fmt.Errorf("%w: uploads still in progress", errNotReady)
		}
		for _, f := range files {
			if !f.Uploaded() {
				return fmt.Errorf("%w: %s has not been uploaded", errNotReady, f.Name)
			}
		}
		a.setStage(ctx, StageRanges)
		printlnFn("Files uploaded. Configure page ranges, then type 'next'.")
		return nil

	case StageRanges:
		if !a.controller.CanAdvance() {
			return fmt.Errorf("%w: every file needs at least one complete range", errNotReady)
		}
		if err := a.repos.Progress.Clear(ctx); err != nil {
			a.log.Error(ctx, "error clearing saved progress", "error", err)
		}
		printlnFn(fmt.Sprintf("Draft complete. Order %s is ready for checkout.", a.controller.OrderID()))
		return nil

	default:
		return fmt.Errorf("unknown stage %q", a.stage)
	}
}
