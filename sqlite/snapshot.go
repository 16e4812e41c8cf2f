package sqlite

import (
	"context"
	"time"

	bapanel "github.com/b0id/blackarch-panel"
)

// ImportSnapshot applies a snapshot in a single transaction. Tools keep
// the last-updated timestamps recorded in the snapshot; records without
// one are stamped at import time. Any failure rolls the whole import back
// and leaves the store untouched.
func (s *ToolService) ImportSnapshot(ctx context.Context, snap *bapanel.Snapshot) (int, error) {
	if snap == nil {
		return 0, bapanel.Errorf(bapanel.EINVALID, "snapshot required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	count := 0
	for _, tool := range snap.Tools {
		if err := tool.Validate(); err != nil {
			return 0, err
		}

		t := *tool
		if t.LastUpdated == 0 {
			t.LastUpdated = time.Now().Unix()
		}
		if err := upsertToolTx(ctx, tx, &t); err != nil {
			return 0, err
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
