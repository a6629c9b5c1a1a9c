package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Mirror mapping persistence for the sync worker. The mapping lives beside
// the source ledger so a worker restart resumes with the same state and
// never re-inserts already-mirrored records.

func (r *SQLiteRepository) MirrorID(ctx context.Context, localID int64) (int64, bool, error) {
	var mirrorID int64
	err := r.db.QueryRowContext(ctx, getMirrorIDSQL, localID).Scan(&mirrorID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get mirror mapping: %w", err)
	}
	return mirrorID, true, nil
}

func (r *SQLiteRepository) SetMirrorID(ctx context.Context, localID, mirrorID int64) error {
	if _, err := r.db.ExecContext(ctx, setMirrorIDSQL, localID, mirrorID); err != nil {
		return fmt.Errorf("set mirror mapping: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteMirrorID(ctx context.Context, localID int64) error {
	if _, err := r.db.ExecContext(ctx, deleteMirrorIDSQL, localID); err != nil {
		return fmt.Errorf("delete mirror mapping: %w", err)
	}
	return nil
}
