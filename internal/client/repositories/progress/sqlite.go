package progress

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/printdraft/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
	// now is swappable in tests
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*Marker, error) {
	var (
		stage   string
		orderID string
		expires int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT stage, order_id, expires_at FROM draft_progress WHERE id = 1`,
	).Scan(&stage, &orderID, &expires)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft progress: %w", err)
	}

	m := &Marker{Stage: stage, OrderID: orderID, ExpiresAt: time.Unix(expires, 0)}
	if m.Expired(r.now()) {
		return nil, nil
	}
	return m, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, m *Marker) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO draft_progress (id, stage, order_id, expires_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			stage = excluded.stage,
			order_id = excluded.order_id,
			expires_at = excluded.expires_at
	`, m.Stage, m.OrderID, m.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save draft progress: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM draft_progress`)
	if err != nil {
		return fmt.Errorf("failed to clear draft progress: %w", err)
	}
	return nil
}
