// Package draft is the draft-order construction engine: the authoritative
// in-memory tree of files being uploaded and their per-file page-range
// print configurations.
//
// # Overview
//
// The package provides:
//  1. Store — the single-writer collection of draft files. Its operations
//     (AddFiles, Retry, DeleteFile, AddRange, UpdateRange, DeleteRange) are
//     the only way the tree mutates. Each operation validates fully before
//     touching state, so a failed call never leaves a half-applied change.
//  2. Controller — the composition the surrounding wizard talks to: it owns
//     the store, the paper catalog snapshot and the thumbnail poller, and
//     exposes the readiness predicate that gates advancing to the next
//     wizard stage.
//
// # Concurrency
//
// Uploads run in background goroutines, one per file, and deliver progress
// and terminal results back into the store. Every asynchronous callback is
// guarded by identity: it carries a handle to the specific transfer attempt
// that produced it, and the store ignores callbacks whose handle is no
// longer current — the file was deleted, the store was closed, or a retry
// superseded the attempt. A terminal result wins over any progress event
// that arrives after it.
//
// # Error Handling
//
// Conditions the UI disables actions for are still enforced here as
// sentinel errors (ErrTooManyFiles, ErrNotUploaded, ErrRangeIncomplete,
// ErrVariantNotAllowed, ...) so the engine stays consistent even when a
// caller bypasses the disabled control. Match them with errors.Is.
package draft
