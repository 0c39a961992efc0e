package audit

import (
	"context"

	"github.com/fwojciec/docpeek"
)

// Change is a key whose preview differs from the one recorded by an
// earlier run.
type Change struct {
	Key    string
	Before string
	After  string
}

// Comparison is the difference between an audit and the recorded
// snapshots.
type Comparison struct {
	Changed []Change

	// Added counts resolved keys with no recorded snapshot.
	Added int
}

// Compare checks each resolved result against its recorded snapshot.
// Results without a preview are not compared.
func Compare(ctx context.Context, snapshots docpeek.SnapshotService, results []Result) (*Comparison, error) {
	var cmp Comparison
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		key := r.Key.String()
		snap, err := snapshots.FindSnapshot(ctx, key)
		if docpeek.ErrorCode(err) == docpeek.ENOTFOUND {
			cmp.Added++
			continue
		} else if err != nil {
			return nil, err
		}
		if snap.Digest != r.Digest {
			cmp.Changed = append(cmp.Changed, Change{Key: key, Before: snap.Text, After: r.Text})
		}
	}
	return &cmp, nil
}

// Record stores the resolved results as a new run over base.
func Record(ctx context.Context, snapshots docpeek.SnapshotService, base string, results []Result) (*docpeek.CheckRun, error) {
	run := &docpeek.CheckRun{Base: base}
	if err := snapshots.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	var snaps []*docpeek.Snapshot
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		snaps = append(snaps, &docpeek.Snapshot{
			Key:    r.Key.String(),
			Digest: r.Digest,
			Text:   r.Text,
		})
	}
	if err := snapshots.SaveSnapshots(ctx, run.ID, snaps); err != nil {
		return nil, err
	}
	return run, nil
}
