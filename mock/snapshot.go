package mock

import (
	"context"

	"github.com/fwojciec/docpeek"
)

var _ docpeek.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of docpeek.SnapshotService.
type SnapshotService struct {
	CreateRunFn     func(ctx context.Context, run *docpeek.CheckRun) error
	LatestRunFn     func(ctx context.Context) (*docpeek.CheckRun, error)
	SaveSnapshotsFn func(ctx context.Context, runID string, snapshots []*docpeek.Snapshot) error
	FindSnapshotFn  func(ctx context.Context, key string) (*docpeek.Snapshot, error)
}

func (s *SnapshotService) CreateRun(ctx context.Context, run *docpeek.CheckRun) error {
	return s.CreateRunFn(ctx, run)
}

func (s *SnapshotService) LatestRun(ctx context.Context) (*docpeek.CheckRun, error) {
	return s.LatestRunFn(ctx)
}

func (s *SnapshotService) SaveSnapshots(ctx context.Context, runID string, snapshots []*docpeek.Snapshot) error {
	return s.SaveSnapshotsFn(ctx, runID, snapshots)
}

func (s *SnapshotService) FindSnapshot(ctx context.Context, key string) (*docpeek.Snapshot, error) {
	return s.FindSnapshotFn(ctx, key)
}
