package dedupe

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/godedupe/internal/types"
)

// SizeBuckets groups file records by exact byte size. Bucket iteration
// order is the order in which sizes were first seen during the scan, and
// records within a bucket keep scan discovery order, so downstream output
// is deterministic for a given inventory.
type SizeBuckets struct {
	buckets *orderedmap.OrderedMap[int64, []*types.FileRecord]
}

// BucketBySize partitions the inventory into size buckets.
func BucketBySize(records []*types.FileRecord) *SizeBuckets {
	buckets := orderedmap.NewOrderedMap[int64, []*types.FileRecord]()
	for _, rec := range records {
		existing, _ := buckets.Get(rec.Size)
		buckets.Set(rec.Size, append(existing, rec))
	}
	return &SizeBuckets{buckets: buckets}
}

// MultiMember drops singleton buckets and returns the rest in size
// discovery order. A bucket with one member cannot contain duplicates, so
// its file is never hashed.
func (b *SizeBuckets) MultiMember() []Bucket {
	var out []Bucket
	for el := b.buckets.Front(); el != nil; el = el.Next() {
		if len(el.Value) < 2 {
			continue
		}
		out = append(out, Bucket{Size: el.Key, Records: el.Value})
	}
	return out
}

// Len returns the total number of buckets including singletons.
func (b *SizeBuckets) Len() int {
	return b.buckets.Len()
}

// Bucket is one size class: all inventoried files with the same byte count.
type Bucket struct {
	Size    int64
	Records []*types.FileRecord
}
