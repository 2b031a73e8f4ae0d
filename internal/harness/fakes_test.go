package harness

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/danielnorberg/scio/pkg/dataflow"
)

// fakeEngine records submitted specs and hands out handles the test can
// resolve at will via onSubmit.
type fakeEngine struct {
	mu        sync.Mutex
	specs     []*dataflow.JobSpec
	handles   []*dataflow.JobHandle
	submitErr error
	onSubmit  func(spec *dataflow.JobSpec, handle *dataflow.JobHandle)
}

func (e *fakeEngine) Submit(_ context.Context, spec *dataflow.JobSpec) (*dataflow.JobHandle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.submitErr != nil {
		return nil, e.submitErr
	}
	handle := dataflow.NewJobHandle(fmt.Sprintf("job-%d", len(e.specs)+1))
	handle.SetState(dataflow.StateRunning)
	e.specs = append(e.specs, spec)
	e.handles = append(e.handles, handle)
	if e.onSubmit != nil {
		e.onSubmit(spec, handle)
	}
	return handle, nil
}

func (e *fakeEngine) submittedSpecs() []*dataflow.JobSpec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*dataflow.JobSpec{}, e.specs...)
}

// fakeMetadataService serves canned metadata per job id. failures[jobID]
// makes that many fetches fail before one succeeds.
type fakeMetadataService struct {
	mu       sync.Mutex
	metadata map[string]*dataflow.JobMetadata
	failures map[string]int
	calls    int
}

func newFakeMetadataService() *fakeMetadataService {
	return &fakeMetadataService{
		metadata: map[string]*dataflow.JobMetadata{},
		failures: map[string]int{},
	}
}

func (s *fakeMetadataService) GetJobMetadata(_ context.Context, jobID string) (*dataflow.JobMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failures[jobID] > 0 {
		s.failures[jobID]--
		return nil, errors.Errorf("metadata service unavailable for %s", jobID)
	}
	metadata, ok := s.metadata[jobID]
	if !ok {
		return nil, errors.Errorf("unknown job %s", jobID)
	}
	return metadata, nil
}

func (s *fakeMetadataService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
