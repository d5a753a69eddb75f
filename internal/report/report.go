// Package report renders plans, run summaries, and history for the
// terminal.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/godedupe/internal/dedupe"
	"github.com/dbsmedya/godedupe/internal/journal"
)

// Renderer writes human-readable reports. Colors are optional so piped
// output stays clean.
type Renderer struct {
	out      io.Writer
	colorize bool
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, colorize bool) *Renderer {
	return &Renderer{out: out, colorize: colorize}
}

// RenderPlan prints the full plan: every duplicate group with its keep
// and trash verdicts, then the totals. Nothing on disk has been touched
// when this prints.
func (r *Renderer) RenderPlan(plan *dedupe.Plan) {
	fmt.Fprintf(r.out, "\n=== Deduplication Plan ===\n\n")

	fmt.Fprintf(r.out, "Root: %s\n", plan.Root)
	fmt.Fprintf(r.out, "  Recursive: %v\n", plan.Recursive)
	if plan.ProtectedDir != "" {
		fmt.Fprintf(r.out, "  Protected directory: %s\n", plan.ProtectedDir)
	}
	fmt.Fprintf(r.out, "  Files scanned: %d\n", plan.FilesScanned)
	fmt.Fprintf(r.out, "  Size buckets examined: %d of %d\n\n", plan.BucketsExamined, plan.BucketsTotal)

	if len(plan.Decisions) == 0 {
		fmt.Fprintf(r.out, "No duplicate groups found.\n")
	}

	for i, decision := range plan.Decisions {
		fmt.Fprintf(r.out, "Group %d (%s each):\n", i+1, humanBytes(decision.Group.Size))

		width := 0
		for _, rec := range decision.Group.Members {
			if w := runewidth.StringWidth(rec.Path); w > width {
				width = w
			}
		}
		for _, rec := range decision.Survivors {
			fmt.Fprintf(r.out, "  %s  %s\n", runewidth.FillRight(rec.Path, width), r.keepMark())
		}
		for _, rec := range decision.Discards {
			fmt.Fprintf(r.out, "  %s  %s\n", runewidth.FillRight(rec.Path, width), r.trashMark())
		}
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "Totals:\n")
	fmt.Fprintf(r.out, "  Duplicate groups: %d\n", len(plan.Groups))
	fmt.Fprintf(r.out, "  Files to trash: %d\n", countDiscards(plan))
	fmt.Fprintf(r.out, "  Space reclaimable: %s\n", humanBytes(plan.BytesReclaimable))
	if plan.Warnings() > 0 {
		fmt.Fprintf(r.out, "  Warnings: %d (skipped entries or unreadable files)\n", plan.Warnings())
	}

	fmt.Fprintf(r.out, "\n=== End of Plan ===\n")
	fmt.Fprintf(r.out, "\nNo files were modified. Use the 'scan' command to execute.\n")
}

// RenderSummary prints the outcome of a completed run.
func (r *Renderer) RenderSummary(result *dedupe.Result) {
	fmt.Fprintf(r.out, "\n=== Deduplication Complete ===\n\n")
	fmt.Fprintf(r.out, "Root: %s\n", result.Root)
	fmt.Fprintf(r.out, "  Files scanned: %d\n", result.FilesScanned)
	fmt.Fprintf(r.out, "  Duplicate groups: %d\n", result.GroupsFound)
	fmt.Fprintf(r.out, "  Files trashed: %d\n", result.FilesDisposed)
	fmt.Fprintf(r.out, "  Space reclaimed: %s\n", humanBytes(result.BytesReclaimed))
	if result.DisposalFailures > 0 {
		fmt.Fprintf(r.out, "  Disposal failures: %d\n", result.DisposalFailures)
	}
	if result.Warnings > 0 {
		fmt.Fprintf(r.out, "  Warnings: %d\n", result.Warnings)
	}
	fmt.Fprintf(r.out, "  Duration: %s\n", result.Duration.Round(time.Millisecond))

	if result.Success {
		fmt.Fprintf(r.out, "\nStatus: %s\n", r.okMark("SUCCESS"))
	} else {
		fmt.Fprintf(r.out, "\nStatus: %s\n", r.failMark("COMPLETED WITH FAILURES"))
	}
}

// RenderHistory prints past runs, newest first.
func (r *Renderer) RenderHistory(runs []journal.RunSummary) {
	fmt.Fprintf(r.out, "\n=== Run History ===\n\n")

	if len(runs) == 0 {
		fmt.Fprintf(r.out, "No recorded runs.\n")
		return
	}

	rootWidth := runewidth.StringWidth("Root")
	for _, run := range runs {
		if w := runewidth.StringWidth(run.Root); w > rootWidth {
			rootWidth = w
		}
	}

	fmt.Fprintf(r.out, "%s  %s  %-19s  %7s  %8s  %8s\n",
		runewidth.FillRight("Run", 8), runewidth.FillRight("Root", rootWidth),
		"Started", "Groups", "Trashed", "Warnings")

	for _, run := range runs {
		status := run.StartedAt.Local().Format("2006-01-02 15:04:05")
		trashed := fmt.Sprintf("%d", run.FilesDisposed)
		if !run.CompletedAt.Valid {
			trashed = "-"
		}
		fmt.Fprintf(r.out, "%s  %s  %-19s  %7d  %8s  %8d\n",
			runewidth.FillRight(shortID(run.ID), 8),
			runewidth.FillRight(run.Root, rootWidth),
			status, run.GroupsFound, trashed, run.Warnings)
	}
}

func (r *Renderer) keepMark() string {
	if r.colorize {
		return color.Green.Sprint("keep")
	}
	return "keep"
}

func (r *Renderer) trashMark() string {
	if r.colorize {
		return color.Red.Sprint("trash")
	}
	return "trash"
}

func (r *Renderer) okMark(s string) string {
	if r.colorize {
		return color.Green.Sprint(s)
	}
	return s
}

func (r *Renderer) failMark(s string) string {
	if r.colorize {
		return color.Red.Sprint(s)
	}
	return s
}

func countDiscards(plan *dedupe.Plan) int {
	n := 0
	for _, d := range plan.Decisions {
		n += len(d.Discards)
	}
	return n
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// humanBytes formats a byte count with binary units.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
