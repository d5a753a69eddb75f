package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godedupe/internal/config"
	"github.com/dbsmedya/godedupe/internal/dedupe"
	"github.com/dbsmedya/godedupe/internal/journal"
	"github.com/dbsmedya/godedupe/internal/lock"
	"github.com/dbsmedya/godedupe/internal/logger"
	"github.com/dbsmedya/godedupe/internal/report"
	"github.com/dbsmedya/godedupe/internal/trash"
)

var (
	scanRecursive bool
	scanProtect   string
	scanForce     bool
	scanNoJournal bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Find duplicates and move redundant copies to trash",
	Long: `Scan inventories the directory, groups same-size files by content
fingerprint (and by name unless disabled), picks one survivor per group,
and moves every other copy to a recoverable trash location.

Retention rules:
  1. Files under the protected directory always survive
  2. Otherwise the deepest path survives (earliest path on ties)

Disposals are recoverable: files move to the trash, nothing is unlinked.
Use 'plan' first to preview what a scan would do.

Example:
  godedupe scan /srv/media -r --protect /srv/media/curated`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", false,
		"Scan subdirectories as well")
	scanCmd.Flags().StringVar(&scanProtect, "protect", "",
		"Directory whose files always survive (implies --recursive)")
	scanCmd.Flags().BoolVar(&scanForce, "force", false,
		"Run even if another scan holds the lock for this root (use with caution)")
	scanCmd.Flags().BoolVar(&scanNoJournal, "no-journal", false,
		"Skip recording this run in the journal")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	root := args[0]

	cfg, log, err := loadRunConfig(scanRecursive, scanProtect)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Infow("Starting scan",
		"root", root,
		"recursive", cfg.Scan.Recursive,
		"protected_dir", cfg.Scan.ProtectedDir,
	)

	// One scan per root at a time.
	if !scanForce {
		scanLock, err := lock.New(root)
		if err != nil {
			return fmt.Errorf("failed to create scan lock: %w", err)
		}
		if err := scanLock.AcquireOrFail(); err != nil {
			if errors.Is(err, lock.ErrLockHeld) {
				return fmt.Errorf("another scan is already running for '%s' (use --force to override)", root)
			}
			return fmt.Errorf("failed to acquire scan lock: %w", err)
		}
		defer scanLock.Release()
		log.Infow("Acquired scan lock", "root", root)
	} else {
		log.Warnw("Skipping scan lock acquisition (--force flag used)", "root", root)
	}

	var recorder dedupe.RunRecorder
	if cfg.Journal.Enabled && !scanNoJournal {
		j, err := journal.Open(cfg.Journal.Path, log)
		if err != nil {
			// The journal is optional; the run proceeds without history.
			log.Warnw("Failed to open run journal, continuing without it", "error", err)
		} else {
			defer j.Close()
			recorder = j
		}
	}

	bin, err := trash.NewBin(cfg.Trash.Dir, log)
	if err != nil {
		return fmt.Errorf("failed to initialize trash: %w", err)
	}

	orch, err := dedupe.NewOrchestrator(cfg, root, bin, recorder, log)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn("Received shutdown signal - finishing current file...")
		cancel()
	}()

	result, err := orch.Execute(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("Scan cancelled")
			if result != nil {
				// Report what was already trashed before the interruption.
				report.NewRenderer(cmd.OutOrStdout(), true).RenderSummary(result)
			}
			return nil
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	report.NewRenderer(cmd.OutOrStdout(), true).RenderSummary(result)

	if !result.Success {
		return fmt.Errorf("completed with %d disposal failures", result.DisposalFailures)
	}
	return nil
}

// loadRunConfig loads the configuration, applies CLI and per-command
// flags, and builds the logger. Shared by scan and plan.
func loadRunConfig(recursive bool, protect string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Workers, overrides.NoNameMatch)

	if recursive {
		cfg.Scan.Recursive = true
	}
	if protect != "" {
		cfg.Scan.ProtectedDir = protect
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
