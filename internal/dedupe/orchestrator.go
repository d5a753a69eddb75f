package dedupe

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dbsmedya/godedupe/internal/config"
	"github.com/dbsmedya/godedupe/internal/logger"
	"github.com/dbsmedya/godedupe/internal/scanner"
)

// Result contains statistics and status of a completed run.
type Result struct {
	Root             string
	StartedAt        time.Time
	CompletedAt      time.Time
	Duration         time.Duration
	FilesScanned     int
	GroupsFound      int
	FilesDisposed    int
	DisposalFailures int
	Warnings         int
	BytesReclaimed   int64
	Success          bool
}

// Orchestrator coordinates the pipeline end to end: scan, bucket,
// fingerprint, resolve, decide, dispose. Everything before disposal is
// read-only.
type Orchestrator struct {
	cfg          *config.Config
	root         string
	recursive    bool
	protectedDir string

	scanner       *scanner.Scanner
	fingerprinter *Fingerprinter
	resolver      *Resolver
	bin           Trasher
	recorder      RunRecorder
	logger        *logger.Logger
}

// NewOrchestrator creates an orchestrator for one scan root. bin may be
// nil for plan-only use; Execute requires it. recorder may be nil to
// disable journaling. Configuring a protected directory enables recursive
// scanning, matching the command surface contract.
func NewOrchestrator(cfg *config.Config, root string, bin Trasher, recorder RunRecorder, log *logger.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if root == "" {
		return nil, fmt.Errorf("scan root is empty")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	recursive := cfg.Scan.Recursive
	protectedDir := cfg.Scan.ProtectedDir
	if protectedDir != "" {
		abs, err := filepath.Abs(protectedDir)
		if err != nil {
			return nil, fmt.Errorf("invalid protected directory: %w", err)
		}
		protectedDir = abs
		if !recursive {
			log.Infow("Protected directory configured, enabling recursive scan",
				"protected_dir", protectedDir)
			recursive = true
		}
	}

	return &Orchestrator{
		cfg:           cfg,
		root:          root,
		recursive:     recursive,
		protectedDir:  protectedDir,
		scanner:       scanner.NewScanner(cfg.Scan.IncludeHidden, log),
		fingerprinter: NewFingerprinter(cfg.Matching.HashBufferKB*1024, cfg.Processing.Workers, log),
		resolver:      NewResolver(cfg.Matching.BasenameMatch, log),
		bin:           bin,
		recorder:      recorder,
		logger:        log,
	}, nil
}

// Execute runs the full pipeline and disposes of every discard. Per-file
// failures are aggregated into the result; only an inaccessible root (or
// cancellation) returns an error.
func (o *Orchestrator) Execute(ctx context.Context) (*Result, error) {
	if o.bin == nil {
		return nil, fmt.Errorf("trash facility is nil")
	}
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	result := &Result{
		Root:      o.root,
		StartedAt: time.Now(),
	}

	o.logger.Infow("Starting deduplication run",
		"root", o.root,
		"recursive", o.recursive,
		"protected_dir", o.protectedDir,
		"basename_match", o.cfg.Matching.BasenameMatch,
		"workers", o.cfg.Processing.Workers,
	)

	if o.recorder != nil {
		if err := o.recorder.Begin(ctx, o.root, o.recursive, o.protectedDir); err != nil {
			// The journal is advisory; the run proceeds without it.
			o.logger.Warnw("Failed to begin journal run", "error", err)
		}
	}

	plan, err := o.BuildPlan(ctx)
	if err != nil {
		if plan != nil {
			o.finishResult(result, plan, &DisposalStats{})
			result.Success = false
		}
		return result, err
	}

	stats, disposeErr := NewDisposer(o.bin, o.recorder, o.logger).Dispose(ctx, plan.Decisions)
	o.finishResult(result, plan, stats)

	if disposeErr != nil {
		// Files trashed before the interruption stay reported; the run
		// is not a success.
		result.Success = false
		o.logger.Warnw("Run interrupted during disposal",
			"files_disposed", result.FilesDisposed,
			"error", disposeErr,
		)
		return result, disposeErr
	}

	o.logger.Infow("Deduplication run complete",
		"groups_found", result.GroupsFound,
		"files_disposed", result.FilesDisposed,
		"disposal_failures", result.DisposalFailures,
		"warnings", result.Warnings,
		"bytes_reclaimed", result.BytesReclaimed,
		"duration", result.Duration,
	)

	return result, nil
}

// finishResult fills the result from what the run accomplished and closes
// out the journal entry. Called on completion and on interruption, so the
// journal never dangles and the result always reflects files already
// moved.
func (o *Orchestrator) finishResult(result *Result, plan *Plan, stats *DisposalStats) {
	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)
	result.FilesScanned = plan.FilesScanned
	result.GroupsFound = len(plan.Groups)
	result.FilesDisposed = stats.Disposed
	result.DisposalFailures = stats.Failed
	result.Warnings = plan.Warnings()
	result.BytesReclaimed = stats.BytesReclaimed
	result.Success = stats.Failed == 0

	if o.recorder != nil {
		if err := o.recorder.Complete(context.Background(), result.GroupsFound, result.FilesDisposed, result.Warnings); err != nil {
			o.logger.Warnw("Failed to complete journal run", "error", err)
		}
	}
}

// Root returns the scan root.
func (o *Orchestrator) Root() string {
	return o.root
}

// Recursive reports whether descendants of the root are scanned.
func (o *Orchestrator) Recursive() bool {
	return o.recursive
}

// ProtectedDir returns the normalized protected directory, empty when
// none is configured.
func (o *Orchestrator) ProtectedDir() string {
	return o.protectedDir
}
