package cli

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/printdraft/internal/client/draft"
	"github.com/dmitrijs2005/printdraft/internal/client/models"
	"github.com/dmitrijs2005/printdraft/internal/filex"
)

// AddFiles reads the given local paths into memory and hands them to the
// draft as one batch. Reads run concurrently; if any path fails the whole
// batch is abandoned, matching the draft's all-or-nothing admission.
func (a *App) AddFiles(ctx context.Context, paths []string) error {
	infos := make([]*filex.FileInfo, len(paths))

	g, _ := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			fi, err := filex.ReadForUpload(p)
			if err != nil {
				return err
			}
			infos[i] = fi
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sources := make([]draft.FileSource, len(infos))
	for i, fi := range infos {
		sources[i] = draft.FileSource{
			Name:     fi.Name,
			Size:     fi.Size,
			MimeType: fi.MimeType,
			Data:     fi.Data,
		}
	}

	keys, err := a.controller.AddFiles(sources)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Added %d file(s), uploads started", len(keys)))
	return nil
}

// List prints the draft files with their upload state.
func (a *App) List(_ context.Context) error {
	files := a.controller.Files()
	if len(files) == 0 {
		printlnFn("No files yet. Use: add <path>")
		return nil
	}

	for i, f := range files {
		state := string(f.State)
		switch f.State {
		case models.TransferUploading:
			state = fmt.Sprintf("uploading %d%%", f.Progress)
		case models.TransferFailed:
			state = fmt.Sprintf("failed (%s)", f.FailReason)
		}
		printlnFn(fmt.Sprintf("%2d. %-30s %8d bytes  %-12s ranges: %d", i+1, f.Name, f.Size, state, len(f.Ranges)))
	}
	return nil
}

// Remove deletes an uploaded file from the draft and the server.
func (a *App) Remove(ctx context.Context, fileArg string) error {
	f, err := a.resolveFile(fileArg)
	if err != nil {
		return err
	}
	if err := a.controller.DeleteFile(ctx, f.Key); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Removed %s", f.Name))
	return nil
}

// Retry restarts the upload of a failed file.
func (a *App) Retry(_ context.Context, fileArg string) error {
	f, err := a.resolveFile(fileArg)
	if err != nil {
		return err
	}
	if err := a.controller.Retry(f.Key); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Retrying upload of %s", f.Name))
	return nil
}

// resolveFile maps a 1-based positional argument to a draft file.
func (a *App) resolveFile(arg string) (models.DraftFile, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return models.DraftFile{}, fmt.Errorf("not a file number: %q", arg)
	}
	files := a.controller.Files()
	if n < 1 || n > len(files) {
		return models.DraftFile{}, fmt.Errorf("no file #%d (have %d)", n, len(files))
	}
	return files[n-1], nil
}
