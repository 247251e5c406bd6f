package usecase

import (
	"context"
	"sync"

	"CompanyBrief/internal/domain"
	"CompanyBrief/internal/ports"
)

// fakeClient scripts the completion backend and gauges concurrent usage.
type fakeClient struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	requests    []ports.CompletionRequest

	completeFn func(req ports.CompletionRequest) (string, error)
	streamFn   func(req ports.CompletionRequest, onChunk func(string) error) error
}

func (f *fakeClient) enter(req ports.CompletionRequest) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.requests = append(f.requests, req)
	f.mu.Unlock()
}

func (f *fakeClient) leave() {
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

func (f *fakeClient) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	f.enter(req)
	defer f.leave()
	if f.completeFn == nil {
		return "", nil
	}
	return f.completeFn(req)
}

func (f *fakeClient) Stream(_ context.Context, req ports.CompletionRequest, onChunk func(string) error) error {
	f.enter(req)
	defer f.leave()
	if f.streamFn == nil {
		return nil
	}
	return f.streamFn(req, onChunk)
}

func (f *fakeClient) recorded() []ports.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ports.CompletionRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// recordedEvent is one captured status emission.
type recordedEvent struct {
	JobID   string
	Status  string
	Message string
	Result  map[string]any
}

// recordingNotifier captures status events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) SendStatusUpdate(_ context.Context, jobID, status, message string, result map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{JobID: jobID, Status: status, Message: message, Result: result})
	return nil
}

func (n *recordingNotifier) byStatus(status string) []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedEvent
	for _, ev := range n.events {
		if ev.Status == status {
			out = append(out, ev)
		}
	}
	return out
}

// fakeRenderer returns a fixed references block.
type fakeRenderer struct {
	block string
}

func (f *fakeRenderer) RenderReferences(_ context.Context, _ []string, _ map[string]domain.ReferenceInfo, _ map[string]string) string {
	return f.block
}

// fakeSource serves scripted datasets.
type fakeSource struct {
	datasets map[domain.Category]domain.CategoryDataset
	err      error
}

func (f *fakeSource) LoadDatasets(_ context.Context, _ string) (map[domain.Category]domain.CategoryDataset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.datasets, nil
}

func scoredDoc(title, score string) domain.Document {
	return domain.Document{
		Title:      title,
		Content:    "content of " + title,
		Evaluation: domain.Evaluation{OverallScore: score},
	}
}
