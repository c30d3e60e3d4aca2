// Package progress persists the wizard's resumable state between runs.
//
// A single marker row records which wizard stage the user reached and the
// server-side order the draft belongs to. Markers expire so a stale draft
// (whose presigned URLs and order are long gone) is not offered for resume.
package progress

import (
	"context"
	"time"
)

// Marker is the persisted wizard state.
type Marker struct {
	Stage     string
	OrderID   string
	ExpiresAt time.Time
}

// Expired reports whether the marker is past its expiry at the given instant.
func (m *Marker) Expired(now time.Time) bool {
	return !now.Before(m.ExpiresAt)
}

type Repository interface {
	// Get returns the stored marker, or (nil, nil) when there is none or
	// the stored one has expired.
	Get(ctx context.Context) (*Marker, error)
	// Save stores the marker, replacing any previous one.
	Save(ctx context.Context, m *Marker) error
	// Clear removes the marker. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
