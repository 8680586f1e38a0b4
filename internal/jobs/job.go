package jobs

import (
	"context"
	"sync"
	"time"
)

// debugf is an injected logging hook, set from cmd/wfm-core when -d is
// passed; nil means silent.
var debugf func(format string, args ...interface{})

// SetDebug installs the package-wide debug logger.
func SetDebug(fn func(format string, args ...interface{})) { debugf = fn }

func dbg(format string, args ...interface{}) {
	if debugf != nil {
		debugf("jobs: "+format, args...)
	}
}

// Job is one unit of tracked, cancellable, pausable work moving through the
// pending/running/paused/terminal state machine.
type Job struct {
	ID   int64
	Type Type

	mu          sync.Mutex
	state       State
	progress    Progress
	results     []ItemResult
	err         error
	enqueuedAt  time.Time
	startedAt   time.Time
	completedAt time.Time

	bus *eventBus

	ctx       context.Context
	cancel    context.CancelFunc
	pauseGate chan struct{} // closed while running is allowed; replaced on Pause
}

func newJob(id int64, t Type) *Job {
	ctx, cancel := context.WithCancel(context.Background())
	j := &Job{
		ID:         id,
		Type:       t,
		state:      StatePending,
		progress:   Progress{BytesTotal: -1, ItemsTotal: -1, ETASeconds: -1},
		enqueuedAt: time.Now(),
		bus:        &eventBus{},
		ctx:        ctx,
		cancel:     cancel,
		pauseGate:  closedChan(),
	}
	return j
}

func closedChan() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

// Subscribe registers a new event consumer for this job.
func (j *Job) Subscribe() *Subscription {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.bus.subscribe()
}

// Context returns the job's cancellation context; copy primitives and the
// executor poll Done() between units of work.
func (j *Job) Context() context.Context { return j.ctx }

// State returns the current state under lock.
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// transition moves the job to next if legal, recording timestamps and
// notifying subscribers. Returns false if the edge is illegal (a no-op).
func (j *Job) transition(next State) bool {
	j.mu.Lock()
	if !canTransition(j.state, next) {
		j.mu.Unlock()
		return false
	}
	j.state = next
	switch next {
	case StateRunning:
		if j.startedAt.IsZero() {
			j.startedAt = time.Now()
		}
	case StateCompleted, StateFailed, StateCancelled:
		j.completedAt = time.Now()
	}
	bus := j.bus
	j.mu.Unlock()

	dbg("job %d -> %s", j.ID, next)
	bus.emitState(next)
	return true
}

// Start transitions Pending -> Running. Called by the manager once a
// worker slot is available.
func (j *Job) Start() bool { return j.transition(StateRunning) }

// Pause blocks scheduling of new work units; in-flight units run to
// completion. A no-op outside Running.
func (j *Job) Pause() bool {
	j.mu.Lock()
	if j.state != StateRunning {
		j.mu.Unlock()
		return false
	}
	j.pauseGate = make(chan struct{})
	j.mu.Unlock()
	return j.transition(StatePaused)
}

// Resume reopens the pause gate and returns to Running.
func (j *Job) Resume() bool {
	ok := j.transition(StateRunning)
	if ok {
		j.mu.Lock()
		close(j.pauseGate)
		j.mu.Unlock()
	}
	return ok
}

// Cancel requests cooperative cancellation. Legal from Running or Paused
// (and Pending, for jobs that never got a worker slot).
func (j *Job) Cancel() bool {
	j.mu.Lock()
	gate := j.pauseGate
	j.mu.Unlock()
	if ok := j.transition(StateCancelled); ok {
		j.cancel()
		select {
		case <-gate:
		default:
			close(gate) // unblock anything waiting on the pause gate
		}
		return true
	}
	return false
}

// Cancelled reports whether cancellation has been requested, regardless of
// whether the state transition has completed yet (checked more cheaply
// than State() in hot loops).
func (j *Job) Cancelled() bool {
	select {
	case <-j.ctx.Done():
		return true
	default:
		return false
	}
}

// WaitIfPaused blocks the calling worker while the job is paused, and
// returns immediately once resumed or cancelled.
func (j *Job) WaitIfPaused() {
	j.mu.Lock()
	gate := j.pauseGate
	j.mu.Unlock()
	select {
	case <-gate:
	case <-j.ctx.Done():
	}
}

// ReportProgress publishes a new aggregate progress snapshot.
func (j *Job) ReportProgress(p Progress) {
	j.mu.Lock()
	j.progress = p
	bus := j.bus
	j.mu.Unlock()
	bus.emitProgress(p)
}

// ReportItem records a completed item's outcome for the final report and
// notifies subscribers.
func (j *Job) ReportItem(r ItemResult) {
	j.mu.Lock()
	j.results = append(j.results, r)
	bus := j.bus
	j.mu.Unlock()
	bus.emitItem(r)
}

// ReportLog emits an optional human-readable log line.
func (j *Job) ReportLog(msg string) {
	j.mu.Lock()
	bus := j.bus
	j.mu.Unlock()
	bus.emitLog(msg)
}

// AskConflict publishes a ConflictQuery and blocks until answered or the
// job is cancelled, returning a skip-and-cancel response in the latter
// case.
func (j *Job) AskConflict(q ConflictQuery) ConflictResponse {
	j.mu.Lock()
	bus := j.bus
	j.mu.Unlock()
	bus.emitConflict(q)
	select {
	case resp := <-q.Response:
		return resp
	case <-j.ctx.Done():
		return ConflictResponse{Action: ActionCancelJob}
	}
}

// Finish transitions the job to Completed or Failed and records the
// terminal error, if any.
func (j *Job) Finish(err error) {
	j.mu.Lock()
	j.err = err
	j.mu.Unlock()

	if err != nil {
		j.transition(StateFailed)
		return
	}
	j.transition(StateCompleted)
}

// Snapshot returns an immutable view of the job's current state.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errStr := ""
	if j.err != nil {
		errStr = j.err.Error()
	}
	return Snapshot{
		ID:          j.ID,
		Type:        j.Type,
		State:       j.state,
		Progress:    j.progress,
		Results:     append([]ItemResult(nil), j.results...),
		Err:         errStr,
		EnqueuedAt:  j.enqueuedAt,
		StartedAt:   j.startedAt,
		CompletedAt: j.completedAt,
	}
}
