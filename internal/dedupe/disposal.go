package dedupe

import (
	"context"
	"time"

	"github.com/dbsmedya/godedupe/internal/logger"
	"github.com/dbsmedya/godedupe/internal/types"
)

// Trasher moves a file to a recoverable trash facility. Implementations
// must never delete permanently; the user has to be able to restore.
type Trasher interface {
	Trash(path string) error
}

// RunRecorder receives the outcome of a run for the journal. A nil
// recorder disables journaling.
type RunRecorder interface {
	Begin(ctx context.Context, root string, recursive bool, protectedDir string) error
	Disposal(ctx context.Context, path string, size int64, reason string) error
	Complete(ctx context.Context, groups, disposed, warnings int) error
}

// DisposalStats contains statistics about the disposal phase.
type DisposalStats struct {
	Attempted      int           // Discards handed to the trash facility
	Disposed       int           // Successfully trashed files
	Failed         int           // Files the trash facility rejected
	BytesReclaimed int64         // Total size of successfully trashed files
	Duration       time.Duration // Time taken for disposal
}

// Disposer moves the discards of every retention decision to the trash.
// The disposal phase is the only component that mutates the filesystem,
// and it only ever moves files.
type Disposer struct {
	bin      Trasher
	recorder RunRecorder
	logger   *logger.Logger
}

// NewDisposer creates a disposal executor. recorder may be nil.
func NewDisposer(bin Trasher, recorder RunRecorder, log *logger.Logger) *Disposer {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Disposer{
		bin:      bin,
		recorder: recorder,
		logger:   log,
	}
}

// Dispose trashes every discard. A rejected move is logged and skipped,
// never retried, and does not stop the remaining discards. Cancellation
// stops between files; files already trashed stay trashed.
func (d *Disposer) Dispose(ctx context.Context, decisions []*types.RetentionDecision) (*DisposalStats, error) {
	startTime := time.Now()
	stats := &DisposalStats{}

	for _, decision := range decisions {
		for _, rec := range decision.Discards {
			if err := ctx.Err(); err != nil {
				stats.Duration = time.Since(startTime)
				return stats, err
			}

			stats.Attempted++
			if err := d.bin.Trash(rec.Path); err != nil {
				derr := &DisposalError{Path: rec.Path, Err: err}
				d.logger.Warnw("Disposal failed, skipping", "path", rec.Path, "error", derr)
				stats.Failed++
				continue
			}

			stats.Disposed++
			stats.BytesReclaimed += rec.Size
			d.logger.Infow("Trashed duplicate", "path", rec.Path, "size", rec.Size)

			if d.recorder != nil {
				if err := d.recorder.Disposal(ctx, rec.Path, rec.Size, disposalReason(decision)); err != nil {
					d.logger.Warnw("Failed to journal disposal", "path", rec.Path, "error", err)
				}
			}
		}
	}

	stats.Duration = time.Since(startTime)

	d.logger.Infow("Disposal complete",
		"attempted", stats.Attempted,
		"disposed", stats.Disposed,
		"failed", stats.Failed,
		"bytes_reclaimed", stats.BytesReclaimed,
		"duration", stats.Duration,
	)

	return stats, nil
}

// disposalReason names the surviving copy the discard was redundant with.
func disposalReason(decision *types.RetentionDecision) string {
	if len(decision.Survivors) == 0 {
		return "duplicate"
	}
	return "duplicate of " + decision.Survivors[0].Path
}
