package dedupe

import (
	"github.com/dbsmedya/godedupe/internal/logger"
	"github.com/dbsmedya/godedupe/internal/types"
)

// Resolver computes duplicate groups within a size bucket: connected
// components under "same fingerprint OR same basename".
//
// Fingerprint matching alone misses renamed-but-identical copies whose
// digest could not be computed; basename matching alone groups same-named
// files with different content. The union of both relations is the
// intended, permissive behavior: same name is accepted as evidence of
// duplication even without a content match, at the cost of possible false
// positives. Set matchBasename to false for content-only grouping.
type Resolver struct {
	matchBasename bool
	logger        *logger.Logger
}

// NewResolver creates an equivalence resolver.
func NewResolver(matchBasename bool, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Resolver{
		matchBasename: matchBasename,
		logger:        log,
	}
}

// Resolve partitions one bucket into duplicate groups. Only components
// with at least two members are returned; group order and member order
// follow bucket order, so output is deterministic. Records without a
// fingerprint participate in basename matching only.
func (r *Resolver) Resolve(bucket Bucket) []*types.DuplicateGroup {
	n := len(bucket.Records)
	if n < 2 {
		return nil
	}

	dsu := newDisjointSet(n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.equivalent(bucket.Records[i], bucket.Records[j]) {
				dsu.union(i, j)
			}
		}
	}

	// Collect components, keyed by representative, preserving bucket order.
	members := make(map[int][]*types.FileRecord)
	var order []int
	for i, rec := range bucket.Records {
		root := dsu.find(i)
		if _, seen := members[root]; !seen {
			order = append(order, root)
		}
		members[root] = append(members[root], rec)
	}

	var groups []*types.DuplicateGroup
	for _, root := range order {
		if len(members[root]) < 2 {
			continue
		}
		groups = append(groups, &types.DuplicateGroup{
			Size:    bucket.Size,
			Members: members[root],
		})
	}

	if len(groups) > 0 {
		r.logger.Debugw("Resolved duplicate groups",
			"bucket_size", bucket.Size,
			"bucket_members", n,
			"groups", len(groups),
		)
	}

	return groups
}

// equivalent applies the pairwise relation: same fingerprint (both
// available) or same basename (when enabled).
func (r *Resolver) equivalent(a, b *types.FileRecord) bool {
	if a.HasFingerprint() && b.HasFingerprint() && a.Fingerprint == b.Fingerprint {
		return true
	}
	if r.matchBasename && a.Basename == b.Basename {
		return true
	}
	return false
}
