package drives

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"wfm/internal/jobs"
)

// statsCadence bounds how often FolderStats reports partial progress; the
// scan itself is much finer-grained than this.
const statsCadence = 150 * time.Millisecond

// StatsResult is written exactly once, just before the job transitions to
// Completed, and is safe to read after the caller observes a terminal
// Snapshot().State.
type StatsResult struct {
	value atomic.Pointer[Stats]
}

// Get returns the final stats, or nil if the job hasn't completed yet.
func (r *StatsResult) Get() *Stats { return r.value.Load() }

// FolderStats enqueues a cancellable Job on mgr that walks root and reports
// partial counts at a bounded cadence so a caller can show "calculating…".
// The final totals are written to the returned StatsResult once the job
// completes.
func FolderStats(mgr *jobs.Manager, root string) (*jobs.Job, *StatsResult) {
	result := &StatsResult{}

	job := mgr.Enqueue(jobs.TypeFolderStats, func(job *jobs.Job) error {
		var total int64
		var files, dirs int64
		lastReport := time.Now()

		report := func(current string, force bool) {
			if !force && time.Since(lastReport) < statsCadence {
				return
			}
			lastReport = time.Now()
			job.ReportProgress(jobs.Progress{
				BytesDone:  total,
				BytesTotal: -1,
				ItemsDone:  int(files + dirs),
				ItemsTotal: -1,
				ETASeconds: -1,
				Current:    current,
			})
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if job.Cancelled() {
				return filepath.SkipAll
			}
			if err != nil {
				// Unreadable child: skip it and keep going, matching the
				// enumerator's per-child failure tolerance.
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				dirs++
			} else {
				files++
				if info, ierr := d.Info(); ierr == nil {
					total += info.Size()
				}
			}
			report(path, false)
			return nil
		})
		report(root, true)
		if job.Cancelled() {
			return nil // cancellation is not a failure; final state is Cancelled
		}
		if err != nil {
			return err
		}

		result.value.Store(&Stats{TotalBytes: total, FileCount: files, DirCount: dirs})
		job.ReportItem(jobs.ItemResult{Source: root, Status: jobs.ItemSuccess, Bytes: total})
		return nil
	})

	return job, result
}
