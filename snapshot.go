package docpeek

import (
	"context"
	"time"
)

// CheckRun is one recorded run of a preview check over a site.
type CheckRun struct {
	ID        string    `json:"id"`
	Base      string    `json:"base"`
	StartedAt time.Time `json:"startedAt"`
}

// Snapshot is the preview a key resolved to during a check run. Only keys
// that resolved are recorded.
type Snapshot struct {
	RunID  string `json:"runId"`
	Key    string `json:"key"`
	Digest string `json:"digest"`
	Text   string `json:"text"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.Key == "" {
		return Errorf(EINVALID, "snapshot key required")
	}
	if s.Digest == "" {
		return Errorf(EINVALID, "snapshot digest required")
	}
	return nil
}

// SnapshotService records previews across check runs so that a later run
// can report which previews changed.
type SnapshotService interface {
	// CreateRun records a new run, setting its ID and start time.
	CreateRun(ctx context.Context, run *CheckRun) error

	// LatestRun returns the most recently started run.
	// Returns ENOTFOUND if no run has been recorded.
	LatestRun(ctx context.Context) (*CheckRun, error)

	// SaveSnapshots records snapshots for runID, replacing any earlier
	// snapshot of the same key.
	SaveSnapshots(ctx context.Context, runID string, snapshots []*Snapshot) error

	// FindSnapshot returns the latest snapshot of key.
	// Returns ENOTFOUND if the key was never recorded.
	FindSnapshot(ctx context.Context, key string) (*Snapshot, error)
}
