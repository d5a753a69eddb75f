// Package scanner builds the file inventory for a deduplication run.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dbsmedya/godedupe/internal/logger"
	"github.com/dbsmedya/godedupe/internal/types"
)

// ErrRootInaccessible is returned when the scan root does not exist or
// cannot be read. This is the only fatal scan error; everything below the
// root is skipped with a warning instead.
var ErrRootInaccessible = errors.New("scan root is not accessible")

// Scanner walks a directory and produces FileRecords for regular files.
// Symbolic links and directories are excluded. Entries whose size cannot
// be determined are counted as skipped and left out of the inventory.
type Scanner struct {
	includeHidden bool
	logger        *logger.Logger
}

// NewScanner creates a scanner. Hidden entries (dotfiles) are excluded
// unless includeHidden is set.
func NewScanner(includeHidden bool, log *logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Scanner{
		includeHidden: includeHidden,
		logger:        log,
	}
}

// Scan walks root and returns the inventory of regular files found.
// Non-recursive mode visits only direct children of root; recursive mode
// visits all descendants. Returns ErrRootInaccessible (wrapped) when root
// is missing or unreadable.
func (s *Scanner) Scan(ctx context.Context, root string, recursive bool) ([]*types.FileRecord, *types.ScanStats, error) {
	startTime := time.Now()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRootInaccessible, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRootInaccessible, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is not a directory", ErrRootInaccessible, absRoot)
	}

	stats := &types.ScanStats{}
	var records []*types.FileRecord

	s.logger.Infow("Scanning directory",
		"root", absRoot,
		"recursive", recursive,
	)

	if recursive {
		records, err = s.walkTree(ctx, absRoot, stats)
	} else {
		records, err = s.listChildren(ctx, absRoot, stats)
	}
	if err != nil {
		return nil, nil, err
	}

	stats.FilesFound = len(records)
	stats.Duration = time.Since(startTime)

	s.logger.Infow("Scan complete",
		"files_found", stats.FilesFound,
		"entries_skipped", stats.EntriesSkipped,
		"duration", stats.Duration,
	)

	return records, stats, nil
}

// listChildren scans only the direct children of root.
func (s *Scanner) listChildren(ctx context.Context, root string, stats *types.ScanStats) ([]*types.FileRecord, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootInaccessible, err)
	}

	var records []*types.FileRecord
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		if entry.IsDir() || !entry.Type().IsRegular() {
			continue
		}
		if s.skipHidden(entry.Name()) {
			continue
		}

		path := filepath.Join(root, entry.Name())
		info, err := entry.Info()
		if err != nil {
			s.logger.Warnw("Could not stat entry, skipping", "path", path, "error", err)
			stats.EntriesSkipped++
			continue
		}

		records = append(records, types.NewFileRecord(path, info.Size()))
	}

	return records, nil
}

// walkTree scans root and all of its descendants.
func (s *Scanner) walkTree(ctx context.Context, root string, stats *types.ScanStats) ([]*types.FileRecord, error) {
	var records []*types.FileRecord

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if path == root {
				return fmt.Errorf("%w: %v", ErrRootInaccessible, walkErr)
			}
			s.logger.Warnw("Could not access entry, skipping", "path", path, "error", walkErr)
			stats.EntriesSkipped++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && s.skipHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			// Symlinks, devices, sockets and the like are excluded.
			return nil
		}
		if s.skipHidden(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.logger.Warnw("Could not stat entry, skipping", "path", path, "error", err)
			stats.EntriesSkipped++
			return nil
		}

		records = append(records, types.NewFileRecord(path, info.Size()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Scanner) skipHidden(name string) bool {
	return !s.includeHidden && strings.HasPrefix(name, ".")
}
