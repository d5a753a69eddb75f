package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/godedupe/internal/types"
)

func recWithDigest(path string, size int64, digest string) *types.FileRecord {
	r := types.NewFileRecord(path, size)
	r.Fingerprint = digest
	return r
}

func bucketOf(records ...*types.FileRecord) Bucket {
	return Bucket{Size: records[0].Size, Records: records}
}

func TestResolve_ContentMatch(t *testing.T) {
	r := NewResolver(true, nil)

	groups := r.Resolve(bucketOf(
		recWithDigest("/a/x.mp4", 1000, "h1"),
		recWithDigest("/a/b/x.mp4", 1000, "h1"),
		recWithDigest("/a/b/c/y.mp4", 1000, "h2"),
	))

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Members, 2)
	assert.Equal(t, "/a/x.mp4", groups[0].Members[0].Path)
	assert.Equal(t, "/a/b/x.mp4", groups[0].Members[1].Path)
}

func TestResolve_BasenameMatch(t *testing.T) {
	// Same name, different content: grouped by the basename heuristic.
	r := NewResolver(true, nil)

	groups := r.Resolve(bucketOf(
		recWithDigest("/a/clip.mp4", 1000, "h1"),
		recWithDigest("/b/clip.mp4", 1000, "h2"),
	))

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 2)
}

func TestResolve_BasenameMatchDisabled(t *testing.T) {
	r := NewResolver(false, nil)

	groups := r.Resolve(bucketOf(
		recWithDigest("/a/clip.mp4", 1000, "h1"),
		recWithDigest("/b/clip.mp4", 1000, "h2"),
	))

	assert.Empty(t, groups)
}

func TestResolve_Transitivity(t *testing.T) {
	// A≡B on content, B≡C on basename: all three land in one group even
	// though A and C match on neither relation directly.
	r := NewResolver(true, nil)

	groups := r.Resolve(bucketOf(
		recWithDigest("/a/one.mp4", 1000, "h1"),
		recWithDigest("/b/two.mp4", 1000, "h1"),
		recWithDigest("/c/two.mp4", 1000, "h3"),
	))

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 3)
}

func TestResolve_DisjointGroupsPartitionBucket(t *testing.T) {
	r := NewResolver(true, nil)

	a1 := recWithDigest("/a/x.mp4", 1000, "h1")
	a2 := recWithDigest("/b/x2.mp4", 1000, "h1")
	b1 := recWithDigest("/a/y.mp4", 1000, "h2")
	b2 := recWithDigest("/b/y2.mp4", 1000, "h2")
	lone := recWithDigest("/a/z.mp4", 1000, "h9")

	groups := r.Resolve(bucketOf(a1, a2, b1, b2, lone))

	require.Len(t, groups, 2)
	assert.ElementsMatch(t, []*types.FileRecord{a1, a2}, groups[0].Members)
	assert.ElementsMatch(t, []*types.FileRecord{b1, b2}, groups[1].Members)

	// Groups are disjoint and every grouped record appears exactly once.
	seen := map[string]int{}
	for _, g := range groups {
		for _, m := range g.Members {
			seen[m.Path]++
		}
	}
	for path, count := range seen {
		assert.Equal(t, 1, count, "record %s appears in multiple groups", path)
	}
	assert.NotContains(t, seen, lone.Path)
}

func TestResolve_MissingFingerprintNeverContentMatches(t *testing.T) {
	// Files whose digest could not be computed must not be equated with
	// each other or with anything else on content.
	r := NewResolver(true, nil)

	groups := r.Resolve(bucketOf(
		recWithDigest("/a/one.mp4", 1000, ""),
		recWithDigest("/b/two.mp4", 1000, ""),
		recWithDigest("/c/three.mp4", 1000, "h1"),
	))

	assert.Empty(t, groups)
}

func TestResolve_MissingFingerprintStillBasenameMatches(t *testing.T) {
	r := NewResolver(true, nil)

	groups := r.Resolve(bucketOf(
		recWithDigest("/a/clip.mp4", 1000, ""),
		recWithDigest("/b/clip.mp4", 1000, "h1"),
	))

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 2)
}

func TestResolve_SingletonBucket(t *testing.T) {
	r := NewResolver(true, nil)
	groups := r.Resolve(bucketOf(recWithDigest("/a/x.mp4", 10, "h1")))
	assert.Empty(t, groups)
}

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver(true, nil)

	build := func() Bucket {
		return bucketOf(
			recWithDigest("/a/x.mp4", 1000, "h1"),
			recWithDigest("/b/x.mp4", 1000, "h1"),
			recWithDigest("/c/y.mp4", 1000, "h2"),
			recWithDigest("/d/y.mp4", 1000, "h2"),
		)
	}

	first := r.Resolve(build())
	for i := 0; i < 10; i++ {
		again := r.Resolve(build())
		require.Len(t, again, len(first))
		for g := range first {
			require.Len(t, again[g].Members, len(first[g].Members))
			for m := range first[g].Members {
				assert.Equal(t, first[g].Members[m].Path, again[g].Members[m].Path)
			}
		}
	}
}
