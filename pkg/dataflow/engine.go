package dataflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	df "google.golang.org/api/dataflow/v1b3"
	"google.golang.org/api/googleapi"

	"github.com/danielnorberg/scio/internal/pipeline"
)

const defaultPollInterval = 10 * time.Second

// JobSpec is everything needed to submit one job.
type JobSpec struct {
	AppName string
	JobName string
	// Pipeline options, "--flag=value" form. Later flags override earlier
	// ones; resolution happens inside the engine, not here.
	Args  []string
	Steps []pipeline.Step
}

// Engine submits job specifications to a remote execution engine. Submit
// returns as soon as the engine has accepted the job; it never waits for
// execution. Implementations must be safe for concurrent use.
type Engine interface {
	Submit(ctx context.Context, spec *JobSpec) (*JobHandle, error)
}

// DataflowEngine submits jobs through the Dataflow REST API and tracks each
// submitted job to a terminal state with a background poller.
type DataflowEngine struct {
	svc          *df.Service
	conn         *ConnectionDetails
	pollInterval time.Duration
}

func NewEngine(svc *df.Service, conn *ConnectionDetails) *DataflowEngine {
	return &DataflowEngine{
		svc:          svc,
		conn:         conn,
		pollInterval: defaultPollInterval,
	}
}

func (e *DataflowEngine) Submit(ctx context.Context, spec *JobSpec) (*JobHandle, error) {
	job, err := createJobRequest(spec)
	if err != nil {
		return nil, err
	}

	created, err := e.svc.Projects.Locations.Jobs.Create(e.conn.Project, e.conn.Region, job).Context(ctx).Do()
	if err != nil {
		return nil, errors.WithMessagef(err, "submitting job %s", spec.JobName)
	}

	handle := NewJobHandle(created.Id)
	handle.SetState(State(created.CurrentState))
	go e.watch(ctx, handle)
	return handle, nil
}

func createJobRequest(spec *JobSpec) (*df.Job, error) {
	steps := make([]*df.Step, 0, len(spec.Steps))
	for _, step := range spec.Steps {
		properties, err := json.Marshal(step.Properties)
		if err != nil {
			return nil, errors.WithMessagef(err, "encoding properties of step %s", step.Name)
		}
		steps = append(steps, &df.Step{
			Name:       step.Name,
			Kind:       step.Kind,
			Properties: googleapi.RawMessage(properties),
		})
	}

	options, err := json.Marshal(map[string]interface{}{
		"appName": spec.AppName,
		"jobName": spec.JobName,
		"options": spec.Args,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "encoding pipeline options")
	}

	return &df.Job{
		Name:  spec.JobName,
		Type:  "JOB_TYPE_BATCH",
		Steps: steps,
		Environment: &df.Environment{
			SdkPipelineOptions: googleapi.RawMessage(options),
		},
	}, nil
}

// watch polls the job until it reaches a terminal state and resolves the
// handle. Transient polling errors are logged and retried on the next tick;
// only context cancellation stops the poller early.
func (e *DataflowEngine) watch(ctx context.Context, handle *JobHandle) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			handle.Resolve(handle.State(), ctx.Err())
			return
		case <-ticker.C:
			job, err := e.svc.Projects.Locations.Jobs.Get(e.conn.Project, e.conn.Region, handle.JobID()).
				View("JOB_VIEW_SUMMARY").Context(ctx).Do()
			if err != nil {
				log.WithError(err).Warnf("failed to poll state of job %s", handle.JobID())
				continue
			}
			state := State(job.CurrentState)
			handle.SetState(state)
			if state.Terminal() {
				handle.Resolve(state, nil)
				return
			}
		}
	}
}
