package dedupe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/dbsmedya/godedupe/internal/logger"
	"github.com/dbsmedya/godedupe/internal/types"
)

// Fingerprinter computes content digests by streaming files through a
// fixed-size buffer into a SHA-256 accumulator. Equal bytes always yield
// equal digests; that is the only guarantee the resolver relies on for
// content matches.
type Fingerprinter struct {
	bufSize int
	workers int
	logger  *logger.Logger
}

// NewFingerprinter creates a fingerprint engine. bufSize is the read
// buffer in bytes, workers bounds concurrent file reads.
func NewFingerprinter(bufSize, workers int, log *logger.Logger) *Fingerprinter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	if workers <= 0 {
		workers = 4
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Fingerprinter{
		bufSize: bufSize,
		workers: workers,
		logger:  log,
	}
}

// File computes the hex digest of one file. Returns a ReadError when the
// file cannot be opened or turns unreadable mid-stream; the caller must
// treat that as "fingerprint unavailable", never as a match-anything
// digest.
func (f *Fingerprinter) File(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	defer file.Close()

	hasher := sha256.New()
	buf := make([]byte, f.bufSize)
	if _, err := io.CopyBuffer(hasher, file, buf); err != nil {
		return "", &ReadError{Path: path, Err: err}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Populate computes fingerprints for all records concurrently with a
// bounded worker pool. Each worker writes only its own record, so no lock
// is needed; the pool is fully drained before Populate returns. Records
// that could not be read keep an empty fingerprint and are counted in the
// returned failure total.
func (f *Fingerprinter) Populate(ctx context.Context, records []*types.FileRecord) (int, error) {
	sem := semaphore.NewWeighted(int64(f.workers))
	var failed atomic.Int64

	for _, rec := range records {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Wait for in-flight workers before reporting cancellation.
			_ = sem.Acquire(context.Background(), int64(f.workers))
			return int(failed.Load()), err
		}

		go func(r *types.FileRecord) {
			defer sem.Release(1)

			digest, err := f.File(r.Path)
			if err != nil {
				f.logger.Warnw("Fingerprint unavailable", "path", r.Path, "error", err)
				failed.Add(1)
				return
			}
			r.Fingerprint = digest
		}(rec)
	}

	if err := sem.Acquire(ctx, int64(f.workers)); err != nil {
		_ = sem.Acquire(context.Background(), int64(f.workers))
		return int(failed.Load()), err
	}

	return int(failed.Load()), nil
}

// BufferSize returns the configured read buffer size in bytes.
func (f *Fingerprinter) BufferSize() int {
	return f.bufSize
}

// Workers returns the configured worker pool size.
func (f *Fingerprinter) Workers() int {
	return f.workers
}
