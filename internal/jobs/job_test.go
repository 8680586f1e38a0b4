package jobs

import (
	"errors"
	"testing"
	"time"
)

func TestStateMachineLegalEdges(t *testing.T) {
	cases := []struct {
		from, to State
		want     bool
	}{
		{StatePending, StateRunning, true},
		{StatePending, StateCancelled, true},
		{StatePending, StateCompleted, false},
		{StateRunning, StatePaused, true},
		{StateRunning, StateFailed, true},
		{StatePaused, StateRunning, true},
		{StatePaused, StateFailed, false},
		{StateCompleted, StateRunning, false},
		{StateCancelled, StatePaused, false},
	}
	for _, c := range cases {
		if got := canTransition(c.from, c.to); got != c.want {
			t.Errorf("canTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestJobPauseBlocksThenResumes(t *testing.T) {
	j := newJob(1, TypeCopy)
	j.Start()
	j.Pause()

	unblocked := make(chan struct{})
	go func() {
		j.WaitIfPaused()
		close(unblocked)
	}()

	select {
	case <-unblocked:
		t.Fatal("expected WaitIfPaused to block while paused")
	case <-time.After(20 * time.Millisecond):
	}

	j.Resume()
	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("expected WaitIfPaused to unblock after Resume")
	}
}

func TestJobCancelUnblocksPause(t *testing.T) {
	j := newJob(1, TypeCopy)
	j.Start()
	j.Pause()

	unblocked := make(chan struct{})
	go func() {
		j.WaitIfPaused()
		close(unblocked)
	}()

	j.Cancel()
	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("expected cancel to unblock a paused worker")
	}
	if j.State() != StateCancelled {
		t.Errorf("expected cancelled state, got %s", j.State())
	}
}

func TestJobFinishRecordsError(t *testing.T) {
	j := newJob(1, TypeCopy)
	j.Start()
	j.Finish(errors.New("boom"))
	snap := j.Snapshot()
	if snap.State != StateFailed || snap.Err != "boom" {
		t.Errorf("expected failed state with error, got %+v", snap)
	}
}

func TestProgressIsLossyForSlowSubscriber(t *testing.T) {
	j := newJob(1, TypeCopy)
	sub := j.Subscribe()

	for i := 0; i < 10; i++ {
		j.ReportProgress(Progress{BytesDone: int64(i)})
	}

	select {
	case p := <-sub.Progress:
		if p.BytesDone != 9 {
			t.Errorf("expected only the latest progress value 9, got %d", p.BytesDone)
		}
	default:
		t.Fatal("expected a progress value to be available")
	}
}

func TestManagerRunsJobsInOrder(t *testing.T) {
	m := NewManager()
	defer m.Close()

	var order []int64
	done := make(chan struct{})

	run := func(id int64) RunFunc {
		return func(j *Job) error {
			order = append(order, id)
			if id == 2 {
				close(done)
			}
			return nil
		}
	}

	m.Enqueue(TypeCopy, run(1))
	m.Enqueue(TypeCopy, run(2))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("jobs did not run in time")
	}
	time.Sleep(10 * time.Millisecond)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected jobs to run in submission order, got %v", order)
	}
}

func TestManagerCancelPendingJob(t *testing.T) {
	m := NewManager()
	defer m.Close()

	block := make(chan struct{})
	j1 := m.Enqueue(TypeCopy, func(j *Job) error {
		<-block
		return nil
	})
	j2 := m.Enqueue(TypeCopy, func(j *Job) error { return nil })

	if !m.Cancel(j2.ID) {
		t.Fatal("expected cancel of pending job to succeed")
	}
	close(block)
	_ = j1
}
