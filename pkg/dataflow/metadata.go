package dataflow

import (
	"context"

	"github.com/pkg/errors"
	df "google.golang.org/api/dataflow/v1b3"
)

// MetricUpdate is one metric reported by a job: a structured name, the
// context tags the engine attached to it, and its scalar value.
type MetricUpdate struct {
	Name    string
	Context map[string]string
	Scalar  interface{}
}

// JobMetadata is the timing and metric information the metadata service
// reports for one job.
type JobMetadata struct {
	JobID            string
	CurrentState     State
	CreateTime       string
	CurrentStateTime string
	Metrics          []MetricUpdate
}

// MetadataService fetches job metadata at the fullest available detail
// level.
type MetadataService interface {
	GetJobMetadata(ctx context.Context, jobID string) (*JobMetadata, error)
}

type metadataService struct {
	svc  *df.Service
	conn *ConnectionDetails
}

func NewMetadataService(svc *df.Service, conn *ConnectionDetails) MetadataService {
	return &metadataService{svc: svc, conn: conn}
}

func (s *metadataService) GetJobMetadata(ctx context.Context, jobID string) (*JobMetadata, error) {
	if jobID == "" {
		return nil, errors.New("no job id provided")
	}

	job, err := s.svc.Projects.Locations.Jobs.Get(s.conn.Project, s.conn.Region, jobID).
		View("JOB_VIEW_ALL").Context(ctx).Do()
	if err != nil {
		return nil, errors.WithMessagef(err, "fetching job %s", jobID)
	}

	metrics, err := s.svc.Projects.Locations.Jobs.GetMetrics(s.conn.Project, s.conn.Region, jobID).
		Context(ctx).Do()
	if err != nil {
		return nil, errors.WithMessagef(err, "fetching metrics of job %s", jobID)
	}

	updates := make([]MetricUpdate, 0, len(metrics.Metrics))
	for _, m := range metrics.Metrics {
		if m.Name == nil {
			continue
		}
		updates = append(updates, MetricUpdate{
			Name:    m.Name.Name,
			Context: m.Name.Context,
			Scalar:  m.Scalar,
		})
	}

	return &JobMetadata{
		JobID:            job.Id,
		CurrentState:     State(job.CurrentState),
		CreateTime:       job.CreateTime,
		CurrentStateTime: job.CurrentStateTime,
		Metrics:          updates,
	}, nil
}
