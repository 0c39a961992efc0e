package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/docpeek"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docpeek.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements docpeek.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// CreateRun records a new run.
func (s *SnapshotService) CreateRun(ctx context.Context, run *docpeek.CheckRun) error {
	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, base, started_at)
		VALUES (?, ?, ?)
	`, run.ID, run.Base, run.StartedAt.Format(timeFormat))

	return err
}

// LatestRun returns the most recently started run.
func (s *SnapshotService) LatestRun(ctx context.Context) (*docpeek.CheckRun, error) {
	var run docpeek.CheckRun
	var startedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, base, started_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.Base, &startedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, docpeek.Errorf(docpeek.ENOTFOUND, "no check run recorded")
	}
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = parseTime(startedAt, "started_at")
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// SaveSnapshots records snapshots for runID in a single transaction.
func (s *SnapshotService) SaveSnapshots(ctx context.Context, runID string, snapshots []*docpeek.Snapshot) error {
	for _, snap := range snapshots {
		if err := snap.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshots (key, run_id, digest, text)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			run_id = excluded.run_id,
			digest = excluded.digest,
			text = excluded.text
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, snap := range snapshots {
		snap.RunID = runID
		if _, err := stmt.ExecContext(ctx, snap.Key, snap.RunID, snap.Digest, snap.Text); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindSnapshot returns the latest snapshot of key.
func (s *SnapshotService) FindSnapshot(ctx context.Context, key string) (*docpeek.Snapshot, error) {
	var snap docpeek.Snapshot

	err := s.db.QueryRowContext(ctx, `
		SELECT key, run_id, digest, text
		FROM snapshots
		WHERE key = ?
	`, key).Scan(&snap.Key, &snap.RunID, &snap.Digest, &snap.Text)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, docpeek.Errorf(docpeek.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
