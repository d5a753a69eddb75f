package dedupe

import (
	"context"
	"time"

	"github.com/dbsmedya/godedupe/internal/types"
)

// Plan is the outcome of the read-only half of the pipeline: the scan,
// the duplicate groups and the retention decisions, before anything is
// moved. The plan command renders it verbatim; Execute disposes of its
// discards.
type Plan struct {
	Root         string
	Recursive    bool
	ProtectedDir string

	FilesScanned        int
	EntriesSkipped      int
	BucketsTotal        int
	BucketsExamined     int
	FingerprintFailures int

	Groups    []*types.DuplicateGroup
	Decisions []*types.RetentionDecision

	BytesReclaimable int64
	Duration         time.Duration
}

// Warnings is the total of per-entry failures during the run: entries the
// scanner skipped plus files whose fingerprint could not be computed.
func (p *Plan) Warnings() int {
	return p.EntriesSkipped + p.FingerprintFailures
}

// BuildPlan runs scan, bucketing, fingerprinting, resolution and
// retention without touching the filesystem. Cancellation is honored
// between buckets: groups already resolved are kept in the returned plan
// along with the error, so the caller can report partial findings.
func (o *Orchestrator) BuildPlan(ctx context.Context) (*Plan, error) {
	startTime := time.Now()

	plan := &Plan{
		Root:         o.root,
		Recursive:    o.recursive,
		ProtectedDir: o.protectedDir,
	}

	records, scanStats, err := o.scanner.Scan(ctx, o.root, o.recursive)
	if err != nil {
		return nil, err
	}
	plan.FilesScanned = scanStats.FilesFound
	plan.EntriesSkipped = scanStats.EntriesSkipped

	buckets := BucketBySize(records)
	multi := buckets.MultiMember()
	plan.BucketsTotal = buckets.Len()
	plan.BucketsExamined = len(multi)

	o.logger.Infow("Examining size buckets",
		"buckets_total", plan.BucketsTotal,
		"buckets_multi_member", plan.BucketsExamined,
	)

	for _, bucket := range multi {
		if err := ctx.Err(); err != nil {
			plan.Duration = time.Since(startTime)
			o.logger.Warnw("Plan interrupted between buckets",
				"groups_resolved", len(plan.Groups),
				"error", err,
			)
			return plan, err
		}

		failed, err := o.fingerprinter.Populate(ctx, bucket.Records)
		plan.FingerprintFailures += failed
		if err != nil {
			plan.Duration = time.Since(startTime)
			return plan, err
		}

		for _, group := range o.resolver.Resolve(bucket) {
			plan.Groups = append(plan.Groups, group)

			decision := Decide(group, o.protectedDir)
			plan.Decisions = append(plan.Decisions, decision)
			for _, rec := range decision.Discards {
				plan.BytesReclaimable += rec.Size
			}
		}
	}

	plan.Duration = time.Since(startTime)

	o.logger.Infow("Plan complete",
		"groups", len(plan.Groups),
		"bytes_reclaimable", plan.BytesReclaimable,
		"warnings", plan.Warnings(),
		"duration", plan.Duration,
	)

	return plan, nil
}
