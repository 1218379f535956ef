// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/logging"
	"github.com/sitelens/sitelens/internal/model"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── WebClient ─────────────────────────────────────────────────────────

// DummyWebClient implements interfaces.WebClient. By default every request
// returns status 200 with body "ok:<url>". Responses maps exact URLs to
// canned bodies; FailURLs forces an error; StatusCodes overrides the status.
type DummyWebClient struct {
	Responses   map[string][]byte
	StatusCodes map[string]int
	FailURLs    map[string]bool

	mu       sync.Mutex
	Requests []*model.Request
}

func (d *DummyWebClient) Do(ctx context.Context, req *model.Request) (*model.Response, error) {
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if d.FailURLs != nil && d.FailURLs[req.URL] {
		return nil, errors.New("dummy fetch fail")
	}

	body := []byte("ok:" + req.URL)
	if b, ok := d.Responses[req.URL]; ok {
		body = b
	}
	status := 200
	if s, ok := d.StatusCodes[req.URL]; ok {
		status = s
	}
	return &model.Response{
		Request:    req,
		Body:       body,
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Get(ctx context.Context, url string) (*model.Response, error) {
	return d.Do(ctx, &model.Request{Method: "GET", URL: url})
}

func (d *DummyWebClient) Close() error { return nil }

// RequestedURLs returns the URLs seen so far, in order.
func (d *DummyWebClient) RequestedURLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.Requests))
	for i, r := range d.Requests {
		out[i] = r.URL
	}
	return out
}

// ─── ScanStore ─────────────────────────────────────────────────────────

// DummyScanStore implements interfaces.ScanStore in memory.
type DummyScanStore struct {
	mu        sync.Mutex
	Scans     map[string]*model.ScanResult
	Snapshots map[string][]byte
	Owners    map[string]string
	SaveErr   error
}

var _ interfaces.ScanStore = (*DummyScanStore)(nil)

func NewDummyScanStore() *DummyScanStore {
	return &DummyScanStore{
		Scans:     make(map[string]*model.ScanResult),
		Snapshots: make(map[string][]byte),
		Owners:    make(map[string]string),
	}
}

func (s *DummyScanStore) SaveScan(ctx context.Context, userID string, result *model.ScanResult, snapshot []byte) (string, error) {
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	cp := *result
	cp.ID = id
	s.Scans[id] = &cp
	s.Snapshots[id] = snapshot
	s.Owners[id] = userID
	return id, nil
}

func (s *DummyScanStore) GetScan(ctx context.Context, id string) (*model.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.Scans[id]
	if !ok {
		return nil, errors.New("scan not found")
	}
	cp := *res
	return &cp, nil
}

func (s *DummyScanStore) ListScans(ctx context.Context, userID string, limit int) ([]*model.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.ScanResult
	for id, res := range s.Scans {
		if userID != "" && s.Owners[id] != userID {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *DummyScanStore) AttachInsight(ctx context.Context, id string, insight *model.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.Scans[id]
	if !ok {
		return errors.New("scan not found")
	}
	if res.Insight == nil {
		res.Insight = insight
	}
	return nil
}

func (s *DummyScanStore) GetSnapshot(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.Snapshots[id]
	if !ok {
		return nil, errors.New("scan not found")
	}
	return snap, nil
}

func (s *DummyScanStore) Close() error { return nil }
