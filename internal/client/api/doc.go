// Package api contains the client-side contract for the print-order backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the four collaborator endpoints the draft engine depends on: file
//     registration, file deletion, thumbnail retrieval and the paper catalog.
//  2. A concrete HTTP implementation (see HTTPClient) that talks JSON to the
//     backend and maps response statuses to sentinel errors exactly once at
//     the boundary. Downstream code never re-interprets raw statuses.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrProcessing (thumbnail still generating), ErrNotFound,
// ErrUnavailable (transport-level failure) and ErrServer (any other non-2xx
// response, carrying the server's code/message when one was supplied).
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation/timeouts; cancelling the context
// aborts the underlying request.
package api
