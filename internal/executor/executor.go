// Package executor drives a planner.TransferPlan to completion: directory
// creation ahead of files, rename-vs-copy+delete move semantics, conflict
// dispatch, the numbered-suffix rename algorithm, partial-failure policy,
// and EMA-based progress aggregation.
package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"wfm/internal/conflict"
	"wfm/internal/copier"
	"wfm/internal/jobs"
	"wfm/internal/planner"
)

// Options configures one execution of a plan.
type Options struct {
	Move             bool // false = copy, true = move
	ContinueOnError  bool
	ConflictPolicy   conflict.Policy
	Ask              conflict.AskFunc // used under conflict.PolicyAsk; when nil, the job's ConflictQuery protocol answers instead
	ProgressInterval time.Duration    // default 200ms when zero
}

// Report is the final, per-item account of one execution.
type Report struct {
	Items      []jobs.ItemResult
	BytesMoved int64
	Elapsed    time.Duration
}

// Result is written exactly once, just before the job reaches a terminal
// state, mirroring drives.StatsResult.
type Result struct {
	value atomic.Pointer[Report]
}

// Get returns the final report, or nil if the job hasn't finished yet.
func (r *Result) Get() *Report { return r.value.Load() }

// Execute enqueues a Job on mgr that replays plan under opts, returning
// immediately with the Job (for Subscribe/Cancel/Pause) and a Result that
// becomes readable once the job reaches a terminal state.
func Execute(mgr *jobs.Manager, t jobs.Type, plan planner.TransferPlan, opts Options) (*jobs.Job, *Result) {
	result := &Result{}
	job := mgr.Enqueue(t, func(job *jobs.Job) error {
		report, err := run(job, plan, opts)
		result.value.Store(&report)
		return err
	})
	return job, result
}

// run performs one plan replay against job, which must already be Running.
func run(job *jobs.Job, plan planner.TransferPlan, opts Options) (Report, error) {
	if opts.ProgressInterval == 0 {
		opts.ProgressInterval = 200 * time.Millisecond
	}

	resolver := conflict.New(opts.ConflictPolicy, bridgeAsk(job, opts.Ask))

	report := Report{}
	ema := newSpeedEMA()
	start := time.Now()
	var bytesDone int64
	lastReport := time.Time{}

	itemsTotal := plan.TotalItems
	bytesTotal := plan.TotalBytes

	emitProgress := func(current string, force bool) {
		now := time.Now()
		if !force && now.Sub(lastReport) < opts.ProgressInterval {
			return
		}
		lastReport = now
		bps := ema.Sample(bytesDone, now)
		var eta float64 = -1
		if bytesTotal >= 0 {
			eta = etaSeconds(bytesTotal-bytesDone, bps)
		}
		job.ReportProgress(jobs.Progress{
			BytesDone:  bytesDone,
			BytesTotal: bytesTotal,
			ItemsDone:  len(report.Items),
			ItemsTotal: itemsTotal,
			SpeedBps:   bps,
			ETASeconds: eta,
			Current:    current,
		})
	}

	var hardFailure error
	var dirSources []string

	for _, item := range plan.Items {
		job.WaitIfPaused()
		if job.Cancelled() {
			break
		}

		switch item.Kind {
		case planner.KindDir:
			if err := os.MkdirAll(item.Dest, 0o755); err != nil {
				result := jobs.ItemResult{Source: item.Source, Destination: item.Dest, Status: jobs.ItemFailed, Error: err.Error()}
				report.Items = append(report.Items, result)
				job.ReportItem(result)
				if !opts.ContinueOnError {
					hardFailure = err
				}
				continue
			}
			result := jobs.ItemResult{Source: item.Source, Destination: item.Dest, Status: jobs.ItemSuccess}
			report.Items = append(report.Items, result)
			job.ReportItem(result)
			dirSources = append(dirSources, item.Source)

		case planner.KindFile:
			emitProgress(item.Source, false)
			base := bytesDone
			onBytes := func(current int64) {
				bytesDone = base + current
				emitProgress(item.Source, false)
			}
			result, err := executeFile(job, item, opts, resolver, onBytes)
			if result.Bytes > 0 {
				bytesDone = base + result.Bytes
				report.BytesMoved += result.Bytes
			}
			report.Items = append(report.Items, result)
			job.ReportItem(result)
			emitProgress(item.Source, false)
			if err != nil && !opts.ContinueOnError {
				hardFailure = err
			}
		}

		if hardFailure != nil {
			break
		}
	}

	emitProgress("", true)
	report.Elapsed = time.Since(start)

	if opts.Move && !job.Cancelled() {
		removeEmptiedSourceDirs(dirSources)
	}

	if hardFailure != nil {
		return report, hardFailure
	}
	return report, nil
}

// removeEmptiedSourceDirs removes source directories left behind by a move,
// deepest first, once their files have been relocated. Best-effort: a
// directory that still holds content (a skipped conflict, a failed item) is
// left in place, since os.Remove only succeeds on an empty directory.
func removeEmptiedSourceDirs(dirs []string) {
	for i := len(dirs) - 1; i >= 0; i-- {
		os.Remove(dirs[i])
	}
}

// executeFile handles one file-level plan item: conflict resolution, then
// rename (same-volume move) or copy (+ delete-source for cross-volume
// moves), mapping every outcome to an ItemResult. onBytes, if non-nil, is
// called with the cumulative bytes transferred for this item as the copy
// progresses, so the caller can aggregate a running total.
func executeFile(job *jobs.Job, item planner.Item, opts Options, resolver *conflict.Resolver, onBytes func(int64)) (jobs.ItemResult, error) {
	dest := item.Dest

	if info, err := os.Lstat(dest); err == nil {
		srcInfo, serr := os.Lstat(item.Source)
		srcMeta := conflict.Meta{}
		if serr == nil {
			srcMeta = conflict.Meta{Size: srcInfo.Size(), Modified: srcInfo.ModTime()}
		}
		dstMeta := conflict.Meta{Size: info.Size(), Modified: info.ModTime()}

		switch resolver.Decide(srcMeta, dstMeta) {
		case conflict.ActionSkip:
			return jobs.ItemResult{Source: item.Source, Destination: dest, Status: jobs.ItemSkipped}, nil
		case conflict.ActionRename:
			dest = renameForConflict(dest)
		case conflict.ActionOverwrite:
			// fall through to the transfer below; overwrite happens naturally
		case conflict.ActionCancelJob:
			job.Cancel()
			return jobs.ItemResult{Source: item.Source, Destination: dest, Status: jobs.ItemSkipped, Error: "cancelled"}, nil
		}
	}

	if opts.Move && item.CanAtomicMove {
		if err := os.Rename(item.Source, dest); err == nil {
			if onBytes != nil {
				onBytes(item.Size)
			}
			return jobs.ItemResult{Source: item.Source, Destination: dest, Status: jobs.ItemSuccess, Bytes: item.Size}, nil
		}
		// Rename across devices or other rename-specific failure: fall back
		// to copy+delete, same as a cross-volume move.
	}

	outcome, err := copier.CopyFile(item.Source, dest, job.Context().Done(), func(done, total int64) bool {
		if onBytes != nil {
			onBytes(done)
		}
		return !job.Cancelled()
	})
	if err != nil {
		return jobs.ItemResult{Source: item.Source, Destination: dest, Status: jobs.ItemFailed, Error: err.Error()}, err
	}
	if outcome == copier.OutcomeCancelled {
		return jobs.ItemResult{Source: item.Source, Destination: dest, Status: jobs.ItemSkipped, Error: "cancelled"}, nil
	}

	if opts.Move {
		// A cancellation observed between copy-complete and delete must not
		// destroy source data the job found intact when it started; skip
		// the delete in that case (see DESIGN.md's Open Question decision).
		if job.Cancelled() {
			return jobs.ItemResult{Source: item.Source, Destination: dest, Status: jobs.ItemSuccess, Bytes: item.Size}, nil
		}
		if err := os.Remove(item.Source); err != nil {
			return jobs.ItemResult{Source: item.Source, Destination: dest, Status: jobs.ItemFailed, Error: err.Error()}, err
		}
	}

	return jobs.ItemResult{Source: item.Source, Destination: dest, Status: jobs.ItemSuccess, Bytes: item.Size}, nil
}

// renameForConflict implements a numbered-suffix algorithm: "name (1).ext",
// "name (2).ext", ... inserted before the last extension; a dotfile with no
// visible extension gets the suffix appended at the end.
func renameForConflict(dest string) string {
	dir := filepath.Dir(dest)
	base := filepath.Base(dest)

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		// a dotfile like ".bashrc": filepath.Ext would otherwise treat the
		// whole name as the extension, which is not what a user expects.
		stem = base
		ext = ""
	}

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// bridgeAsk adapts a conflict.AskFunc into one that, when the caller did not
// supply one, dispatches through the job's own ConflictQuery/Response
// protocol (jobs.Job.AskConflict), so external subscribers (a UI, the CLI)
// can answer one item at a time without pausing the rest of the job.
func bridgeAsk(job *jobs.Job, ask conflict.AskFunc) conflict.AskFunc {
	if ask != nil {
		return ask
	}
	return func(src, dst conflict.Meta) (conflict.Action, bool) {
		resp := job.AskConflict(jobs.ConflictQuery{
			SrcSize:  src.Size,
			DstSize:  dst.Size,
			SrcTime:  src.Modified,
			DstTime:  dst.Modified,
			Response: make(chan jobs.ConflictResponse, 1),
		})
		switch resp.Action {
		case jobs.ActionOverwrite:
			return conflict.ActionOverwrite, resp.ApplyToAll
		case jobs.ActionRename:
			return conflict.ActionRename, resp.ApplyToAll
		case jobs.ActionCancelJob:
			return conflict.ActionCancelJob, false
		default: // ActionSkip
			return conflict.ActionSkip, resp.ApplyToAll
		}
	}
}
