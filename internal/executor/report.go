package executor

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"wfm/internal/jobs"
)

// String renders a human-readable summary of the report, the same shape a
// CLI or status bar would print after a transfer finishes.
func (r Report) String() string {
	var failed, skipped int
	for _, item := range r.Items {
		switch item.Status {
		case jobs.ItemFailed:
			failed++
		case jobs.ItemSkipped:
			skipped++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s moved in %s", humanize.Bytes(uint64(r.BytesMoved)), r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, " (%d item(s)", len(r.Items))
	if failed > 0 {
		fmt.Fprintf(&b, ", %d failed", failed)
	}
	if skipped > 0 {
		fmt.Fprintf(&b, ", %d skipped", skipped)
	}
	b.WriteString(")")

	if failed > 0 {
		b.WriteString("\n")
		for _, item := range r.Items {
			if item.Status != jobs.ItemFailed {
				continue
			}
			fmt.Fprintf(&b, "  %s -> %s: %s\n", item.Source, item.Destination, item.Error)
		}
	}
	return b.String()
}
