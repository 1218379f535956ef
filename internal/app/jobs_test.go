package app_test

import (
	"testing"
	"time"

	"github.com/sitelens/sitelens/internal/app"
	"github.com/sitelens/sitelens/internal/testutil"
)

func newTestJobManager(t *testing.T) (*app.JobManager, *testutil.DummyScanStore) {
	t.Helper()
	scanner, st, _ := newTestScanner(t, nil)
	return app.NewJobManager(scanner, &testutil.DummyLogger{}), st
}

// waitTerminal polls until the job leaves the running states.
func waitTerminal(t *testing.T, m *app.JobManager, id string) app.Job {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		j, ok := m.Job(id)
		if !ok {
			t.Fatalf("job %s disappeared", id)
		}
		if j.Status != app.JobQueued && j.Status != app.JobRunning {
			return j
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", id)
	return app.Job{}
}

func TestJobManager_FailedScanJob(t *testing.T) {
	t.Parallel()

	m, st := newTestJobManager(t)

	job := m.StartScan("alice", "not a url")
	if job.ID == "" || job.Status != app.JobQueued {
		t.Fatalf("snapshot = %+v", job)
	}

	done := waitTerminal(t, m, job.ID)
	if done.Status != app.JobFailed {
		t.Fatalf("status = %q, want failed", done.Status)
	}
	if done.ScanID == "" || done.Error == "" {
		t.Errorf("failed job must reference its error record: %+v", done)
	}
	if _, ok := st.Scans[done.ScanID]; !ok {
		t.Error("error record not persisted")
	}
}

func TestJobManager_EventsCloseAtTerminal(t *testing.T) {
	t.Parallel()

	m, _ := newTestJobManager(t)

	job := m.StartScan("", "not a url")
	ch := m.Events(job.ID)
	if ch == nil {
		// The job already finished before we subscribed.
		done := waitTerminal(t, m, job.ID)
		if done.Status != app.JobFailed {
			t.Fatalf("status = %q", done.Status)
		}
		return
	}

	var last app.JobEvent
	for ev := range ch {
		last = ev
	}
	if last.Status != app.JobFailed {
		t.Errorf("last event status = %q", last.Status)
	}
	if m.Events(job.ID) != nil {
		t.Error("finished jobs must report a nil events channel")
	}
}

func TestJobManager_JobsNewestFirst(t *testing.T) {
	t.Parallel()

	m, _ := newTestJobManager(t)

	first := m.StartScan("", "not a url")
	time.Sleep(5 * time.Millisecond)
	second := m.StartScan("", "also not a url")

	waitTerminal(t, m, first.ID)
	waitTerminal(t, m, second.ID)

	jobs := m.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("len = %d", len(jobs))
	}
	if jobs[0].ID != second.ID {
		t.Error("jobs must be ordered newest first")
	}

	if _, ok := m.Job("missing"); ok {
		t.Error("unknown id must not resolve")
	}
}

func TestJobManager_Cancel(t *testing.T) {
	t.Parallel()

	m, _ := newTestJobManager(t)

	if m.Cancel("missing") {
		t.Error("cancelling an unknown job must report false")
	}

	// The unreachable target keeps the scan busy long enough to cancel.
	job := m.StartScan("", "http://127.0.0.1:1/")
	if !m.Cancel(job.ID) {
		t.Fatal("cancel must find the job")
	}

	done := waitTerminal(t, m, job.ID)
	if done.Status != app.JobCancelled && done.Status != app.JobFailed {
		t.Errorf("status = %q after cancel", done.Status)
	}
}
