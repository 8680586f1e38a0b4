package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wfm/internal/executor"
	"wfm/internal/jobs"
	"wfm/internal/model"
	"wfm/internal/planner"
)

var (
	transferMove           bool
	transferConflictPolicy string
	transferContinueOnErr  bool
	transferNoEstimate     bool
)

var transferCmd = &cobra.Command{
	Use:   "transfer [sources...] [dest_dir]",
	Short: "Copy or move a set of paths into a destination directory, driving the job to completion",
	Long: `transfer builds a plan from the given sources and replays it against
dest_dir, printing progress and prompting for any conflicts under
--conflict=ask. Use "jobs pause/resume/cancel" on the printed job id to
control it from another invocation while it runs.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTransfer,
}

func init() {
	transferCmd.Flags().BoolVarP(&transferMove, "move", "m", false, "move instead of copy")
	transferCmd.Flags().StringVar(&transferConflictPolicy, "conflict", "ask", "conflict policy: overwrite|skip|rename|keep_newer|keep_larger|ask")
	transferCmd.Flags().BoolVar(&transferContinueOnErr, "continue-on-error", true, "keep going after a per-item failure")
	transferCmd.Flags().BoolVar(&transferNoEstimate, "no-estimate", false, "skip the pre-walk that computes total bytes/items")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	sources := args[:len(args)-1]
	dest := args[len(args)-1]

	policy, err := parseConflictPolicy(transferConflictPolicy)
	if err != nil {
		return err
	}

	plan, err := planner.Build(sources, dest, planner.Options{Estimate: !transferNoEstimate})
	if err != nil {
		return err
	}

	jobType := jobs.TypeCopy
	if transferMove {
		jobType = jobs.TypeMove
	}

	job, result := executor.Execute(mgr, jobType, plan, executor.Options{
		Move:            transferMove,
		ContinueOnError: transferContinueOnErr,
		ConflictPolicy:  policy,
	})
	fmt.Printf("started job %d (%d items, %s)\n", job.ID, plan.TotalItems, sizeOrUnknown(plan.TotalBytes))

	runEventLoop(job)
	printReport(result.Get())
	if job.State() == jobs.StateFailed {
		return fmt.Errorf("job %d failed", job.ID)
	}
	return nil
}

func sizeOrUnknown(n int64) string {
	if n < 0 {
		return "size unknown"
	}
	return model.FormatSize(n)
}

// runEventLoop drains a job's Subscription until it reaches a terminal
// state, printing progress and dispatching conflict prompts to the
// terminal when the job's conflict policy is "ask".
func runEventLoop(job *jobs.Job) {
	sub := job.Subscribe()
	reader := bufio.NewReader(os.Stdin)
	width := progressWidth()

	for {
		select {
		case s := <-sub.StateChanged:
			if s.Terminal() {
				clearProgressLine(width)
				return
			}
		case p := <-sub.Progress:
			printProgressLine(p, width)
		case item := <-sub.ItemCompleted:
			if item.Status == jobs.ItemFailed {
				clearProgressLine(width)
				fmt.Fprintf(os.Stderr, "failed: %s: %s\n", item.Source, item.Error)
			}
		case msg := <-sub.Log:
			clearProgressLine(width)
			fmt.Fprintln(os.Stderr, msg)
		case q := <-sub.ConflictDetected:
			clearProgressLine(width)
			q.Response <- promptConflict(reader, q)
		case <-sub.Lagged:
			// The CLI reader fell behind a high-watermark threshold; state
			// is still polled below so the loop still terminates correctly.
		}
		if job.State().Terminal() {
			clearProgressLine(width)
			return
		}
	}
}

func promptConflict(reader *bufio.Reader, q jobs.ConflictQuery) jobs.ConflictResponse {
	fmt.Printf("conflict: %s already exists at destination (src %s, dst %s)\n", q.Dest, model.FormatSize(q.SrcSize), model.FormatSize(q.DstSize))
	fmt.Print("[o]verwrite / [s]kip / [r]ename / overwrite [a]ll / skip all [A]? ")

	line, _ := reader.ReadString('\n')
	switch strings.TrimSpace(line) {
	case "o":
		return jobs.ConflictResponse{Action: jobs.ActionOverwrite}
	case "r":
		return jobs.ConflictResponse{Action: jobs.ActionRename}
	case "a":
		return jobs.ConflictResponse{Action: jobs.ActionOverwrite, ApplyToAll: true}
	case "A":
		return jobs.ConflictResponse{Action: jobs.ActionSkip, ApplyToAll: true}
	default:
		return jobs.ConflictResponse{Action: jobs.ActionSkip}
	}
}

func progressWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func printProgressLine(p jobs.Progress, width int) {
	line := fmt.Sprintf("\r%s/%s  %d/%d items  %s/s",
		model.FormatSize(p.BytesDone), sizeOrUnknown(p.BytesTotal),
		p.ItemsDone, p.ItemsTotal, model.FormatSize(int64(p.SpeedBps)))
	if len(line) > width {
		line = line[:width]
	}
	fmt.Fprint(os.Stderr, line)
}

func clearProgressLine(width int) {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", width))
}

func printReport(report *executor.Report) {
	if report == nil {
		return
	}
	fmt.Println(report.String())
}
