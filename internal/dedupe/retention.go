package dedupe

import (
	"path/filepath"
	"strings"

	"github.com/dbsmedya/godedupe/internal/types"
)

// Decide selects survivors and discards for one duplicate group.
//
// With a protected directory configured, every member inside it survives
// and every member outside it is discarded. When no member is inside, or
// when no protected directory is set, exactly one survivor is chosen: the
// most deeply nested member, with depth ties broken by lexicographically
// smallest path so the outcome never depends on traversal order.
func Decide(group *types.DuplicateGroup, protectedDir string) *types.RetentionDecision {
	decision := &types.RetentionDecision{Group: group}

	if protectedDir != "" {
		var inside, outside []*types.FileRecord
		for _, rec := range group.Members {
			if underDir(rec.Path, protectedDir) {
				inside = append(inside, rec)
			} else {
				outside = append(outside, rec)
			}
		}
		if len(inside) > 0 {
			decision.Survivors = inside
			decision.Discards = outside
			return decision
		}
	}

	keep := deepest(group.Members)
	for _, rec := range group.Members {
		if rec == keep {
			decision.Survivors = append(decision.Survivors, rec)
		} else {
			decision.Discards = append(decision.Discards, rec)
		}
	}
	return decision
}

// deepest returns the member with the greatest path depth; ties go to the
// lexicographically smallest path.
func deepest(members []*types.FileRecord) *types.FileRecord {
	best := members[0]
	for _, rec := range members[1:] {
		if rec.Depth > best.Depth {
			best = rec
			continue
		}
		if rec.Depth == best.Depth && rec.Path < best.Path {
			best = rec
		}
	}
	return best
}

// underDir reports whether path lies within dir (or equals a file directly
// inside it), comparing normalized absolute paths.
func underDir(path, dir string) bool {
	dir = filepath.Clean(dir)
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(path), dir)
}
