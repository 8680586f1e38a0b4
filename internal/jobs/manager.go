package jobs

import (
	"sync"
	"sync/atomic"
)

// RunFunc performs the actual work of a job. Implementations (executor,
// drives) poll job.Cancelled()/job.WaitIfPaused() between units and report
// progress/items via the Job's Report* methods. A non-nil return fails the
// job; nil completes it.
type RunFunc func(job *Job) error

// Manager queues jobs and runs them one at a time on a single background
// worker, driven by a sync.Cond loop. Concurrency within
// a job (bounding file-level units) is the responsibility of the RunFunc,
// typically via a WorkPool.
type Manager struct {
	mu         sync.Mutex
	cond       *sync.Cond
	queue      []queued
	closed     bool
	nextID     int64
	current    *Job
	history    []*Job
	historyMax int
}

type queued struct {
	job *Job
	run RunFunc
}

var (
	defaultManager *Manager
	once           sync.Once
)

// GetManager returns the process-wide singleton Manager.
func GetManager() *Manager {
	once.Do(func() { defaultManager = NewManager() })
	return defaultManager
}

// NewManager constructs and starts a Manager.
func NewManager() *Manager {
	m := &Manager{historyMax: 200}
	m.cond = sync.NewCond(&m.mu)
	go m.worker()
	dbg("manager created; worker started")
	return m
}

// Enqueue creates a new Job of the given type and schedules run to execute
// it once a worker slot is free.
func (m *Manager) Enqueue(t Type, run RunFunc) *Job {
	id := atomic.AddInt64(&m.nextID, 1)
	j := newJob(id, t)

	m.mu.Lock()
	m.queue = append(m.queue, queued{job: j, run: run})
	m.mu.Unlock()
	dbg("enqueue id=%d type=%s", j.ID, string(t))
	m.cond.Signal()
	return j
}

// Cancel cancels the job with the given ID, whether pending or running.
func (m *Manager) Cancel(id int64) bool {
	m.mu.Lock()
	for i, q := range m.queue {
		if q.job.ID == id {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			m.mu.Unlock()
			q.job.Cancel()
			dbg("cancel pending id=%d", id)
			m.addHistory(q.job)
			return true
		}
	}
	cur := m.current
	m.mu.Unlock()

	if cur != nil && cur.ID == id {
		dbg("cancel running id=%d", id)
		return cur.Cancel()
	}
	return false
}

// List returns snapshots of the running job (if any), pending jobs in
// submission order, and history, most recent first.
func (m *Manager) List() []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Snapshot, 0, len(m.queue)+1+len(m.history))
	if m.current != nil {
		out = append(out, m.current.Snapshot())
	}
	for _, q := range m.queue {
		out = append(out, q.job.Snapshot())
	}
	for i := len(m.history) - 1; i >= 0; i-- {
		out = append(out, m.history[i].Snapshot())
	}
	return out
}

// Job looks up a job by ID among running, pending, and history.
func (m *Manager) Job(id int64) (*Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.ID == id {
		return m.current, true
	}
	for _, q := range m.queue {
		if q.job.ID == id {
			return q.job, true
		}
	}
	for _, j := range m.history {
		if j.ID == id {
			return j, true
		}
	}
	return nil, false
}

// Close stops the worker once the queue is empty: the current job and any
// jobs still pending run to the end first.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cond.Signal()
}

func (m *Manager) worker() {
	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.closed {
			m.cond.Wait()
		}
		if m.closed && len(m.queue) == 0 {
			m.mu.Unlock()
			return
		}
		q := m.queue[0]
		m.queue = m.queue[1:]
		m.current = q.job
		m.mu.Unlock()

		dbg("worker starting job id=%d", q.job.ID)
		q.job.Start()
		err := q.run(q.job)
		q.job.Finish(err)
		dbg("worker finished job id=%d state=%s", q.job.ID, q.job.State())

		m.mu.Lock()
		m.current = nil
		m.mu.Unlock()
		m.addHistory(q.job)
	}
}

func (m *Manager) addHistory(j *Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, j)
	if m.historyMax > 0 && len(m.history) > m.historyMax {
		drop := len(m.history) - m.historyMax
		m.history = append([]*Job{}, m.history[drop:]...)
	}
}
