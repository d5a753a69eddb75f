// Package types contains shared types used across multiple packages to avoid import cycles.
package types

import (
	"path/filepath"
	"strings"
	"time"
)

// FileRecord describes one regular file discovered during a scan.
// All fields except Fingerprint are fixed at construction time.
// Fingerprint is filled in lazily, and only for files whose size bucket
// has more than one member; an empty Fingerprint means the content digest
// is unavailable (not yet computed, or the file could not be read).
type FileRecord struct {
	Path        string // absolute path
	Size        int64  // byte count
	Basename    string
	Fingerprint string // hex digest, empty when unavailable
	Depth       int    // number of path separators in Path
}

// NewFileRecord builds a FileRecord from an absolute path and size.
// Basename and Depth are derived from the path.
func NewFileRecord(absPath string, size int64) *FileRecord {
	return &FileRecord{
		Path:     absPath,
		Size:     size,
		Basename: filepath.Base(absPath),
		Depth:    strings.Count(absPath, string(filepath.Separator)),
	}
}

// HasFingerprint reports whether a content digest was computed for this file.
func (r *FileRecord) HasFingerprint() bool {
	return r.Fingerprint != ""
}

// DuplicateGroup is a maximal set of same-sized files judged equivalent:
// connected under "same fingerprint OR same basename". Always has at
// least two members.
type DuplicateGroup struct {
	Size    int64
	Members []*FileRecord
}

// RetentionDecision partitions a duplicate group into the files to keep
// and the files to discard. Survivors is never empty; the two slices are
// disjoint and together cover the whole group.
type RetentionDecision struct {
	Group     *DuplicateGroup
	Survivors []*FileRecord
	Discards  []*FileRecord
}

// ScanStats contains statistics about the inventory scan.
type ScanStats struct {
	FilesFound     int           // Regular files added to the inventory
	EntriesSkipped int           // Entries skipped due to access errors
	Duration       time.Duration // Time taken for the scan
}
