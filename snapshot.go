package bapanel

import (
	"context"
	"fmt"
	"time"
)

// Snapshot filter types recorded in exported documents.
const (
	FilterAll      = "all"
	FilterCategory = "category"
	FilterSearch   = "search"
	FilterTools    = "tools"
)

// Snapshot is the JSON document produced by an export and consumed by an
// import. Tools carry their full dependency and category lists.
type Snapshot struct {
	Tools      []*Tool        `json:"tools"`
	ExportedAt int64          `json:"exported_at"`
	Filter     SnapshotFilter `json:"filter"`
}

// SnapshotFilter describes which subset of the store a snapshot holds.
type SnapshotFilter struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// BuildSnapshot queries the service for tools matching the filter and
// assembles an export document with full details for each tool.
// Pagination fields on the filter are ignored; exports always cover the
// whole matching set.
func BuildSnapshot(ctx context.Context, svc ToolService, filter ToolFilter) (*Snapshot, error) {
	filter.Offset = 0
	filter.Limit = 0

	tools, err := svc.FindTools(ctx, filter)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Tools:      make([]*Tool, 0, len(tools)),
		ExportedAt: time.Now().Unix(),
		Filter:     describeFilter(filter, len(tools)),
	}
	for _, t := range tools {
		full, err := svc.FindToolByName(ctx, t.Name)
		if err != nil {
			return nil, err
		}
		snap.Tools = append(snap.Tools, full)
	}
	return snap, nil
}

func describeFilter(f ToolFilter, n int) SnapshotFilter {
	switch {
	case f.Category != nil:
		return SnapshotFilter{Type: FilterCategory, Value: *f.Category}
	case f.Search != nil:
		return SnapshotFilter{Type: FilterSearch, Value: *f.Search}
	case len(f.Names) > 0:
		return SnapshotFilter{Type: FilterTools, Value: fmt.Sprintf("%d tools", n)}
	default:
		return SnapshotFilter{Type: FilterAll, Value: ""}
	}
}
