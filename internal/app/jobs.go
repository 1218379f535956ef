package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/model"
)

// JobStatus is the lifecycle state of an asynchronous scan job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// JobEvent is one progress notification pushed to job watchers.
type JobEvent struct {
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
	Stage   string    `json:"stage,omitempty"`
	ScanID  string    `json:"scanId,omitempty"`
	Error   string    `json:"error,omitempty"`
	Time    time.Time `json:"time"`
}

// Job tracks one asynchronous scan from submission to completion.
type Job struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	URL       string    `json:"url"`
	Status    JobStatus `json:"status"`
	Stage     string    `json:"stage,omitempty"`
	ScanID    string    `json:"scanId,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	events chan JobEvent
	cancel context.CancelFunc
}

// JobManager starts scan jobs and fans progress out to watchers. Events are
// delivered over a per-job buffered channel; slow watchers lose events
// rather than stalling the scan.
type JobManager struct {
	scanner *Scanner
	logger  interfaces.Logger

	mu   sync.Mutex
	jobs map[string]*Job
}

func NewJobManager(scanner *Scanner, logger interfaces.Logger) *JobManager {
	return &JobManager{
		scanner: scanner,
		logger:  logger.With(interfaces.Field{Key: "component", Value: "jobs"}),
		jobs:    make(map[string]*Job),
	}
}

// StartScan submits a scan job and returns immediately with its snapshot.
func (m *JobManager) StartScan(userID, rawURL string) Job {
	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{
		ID:        uuid.NewString(),
		UserID:    userID,
		URL:       rawURL,
		Status:    JobQueued,
		CreatedAt: time.Now().UTC(),
		events:    make(chan JobEvent, 16),
		cancel:    cancel,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	go m.run(ctx, job.ID, userID, rawURL)
	return *job
}

func (m *JobManager) run(ctx context.Context, jobID, userID, rawURL string) {
	m.update(jobID, func(j *Job) {
		j.Status = JobRunning
	})

	res, err := m.scanner.RunScan(ctx, userID, rawURL, func(stage string) {
		m.update(jobID, func(j *Job) { j.Stage = stage })
	})

	m.update(jobID, func(j *Job) {
		switch {
		case ctx.Err() == context.Canceled:
			j.Status = JobCancelled
		case err != nil:
			j.Status = JobFailed
			j.Error = err.Error()
		case res.Status == model.ScanError:
			j.Status = JobFailed
			j.ScanID = res.ID
			j.Error = res.Error
		default:
			j.Status = JobCompleted
			j.ScanID = res.ID
		}
	})

	m.mu.Lock()
	if j, ok := m.jobs[jobID]; ok {
		close(j.events)
		j.events = nil
	}
	m.mu.Unlock()
}

// update mutates a job under lock and emits the resulting event.
func (m *JobManager) update(jobID string, mut func(*Job)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return
	}
	mut(j)
	if j.events == nil {
		return
	}
	ev := JobEvent{
		JobID:  j.ID,
		Status: j.Status,
		Stage:  j.Stage,
		ScanID: j.ScanID,
		Error:  j.Error,
		Time:   time.Now().UTC(),
	}
	select {
	case j.events <- ev:
	default:
		// Watcher is behind; drop rather than block the scan.
	}
}

// Job returns a snapshot of the job with the given id.
func (m *JobManager) Job(id string) (Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

// Jobs returns snapshots of all known jobs, newest first.
func (m *JobManager) Jobs() []Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out
}

// Cancel aborts a running job. Reports whether the job existed.
func (m *JobManager) Cancel(id string) bool {
	m.mu.Lock()
	j, ok := m.jobs[id]
	m.mu.Unlock()
	if !ok {
		return false
	}
	j.cancel()
	return true
}

// Events returns the job's progress channel. The channel is closed when the
// job reaches a terminal state; nil means the job is already finished or
// unknown.
func (m *JobManager) Events(id string) <-chan JobEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil
	}
	return j.events
}
