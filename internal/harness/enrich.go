package harness

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"

	"github.com/danielnorberg/scio/pkg/dataflow"
)

const (
	// Only metrics with this name prefix make it into the report.
	metricPrefix = "Total"
	// Metrics carrying this context marker are speculative values reported
	// while the job is still running and are excluded.
	tentativeMarker = "tentative"

	metadataFetchAttempts = 3
)

// Enrich augments a finished result with timing metadata and the filtered
// metric set. A missing job id or an exhausted metadata fetch is fatal for
// the run.
func (a *App) Enrich(ctx context.Context, result *BenchmarkResult) (*EnrichedResult, error) {
	jobID := result.Handle.JobID()
	if jobID == "" {
		return nil, errors.Errorf("job of configuration %s has no id", result.Name)
	}

	var metadata *dataflow.JobMetadata
	err := retry.Do(
		func() error {
			var err error
			metadata, err = a.Metadata.GetJobMetadata(ctx, jobID)
			return err
		},
		retry.Attempts(metadataFetchAttempts),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, errors.WithMessagef(err, "fetching metadata of job %s", jobID)
	}

	created, err := time.Parse(time.RFC3339, metadata.CreateTime)
	if err != nil {
		return nil, errors.WithMessagef(err, "parsing create time of job %s", jobID)
	}
	finished, err := time.Parse(time.RFC3339, metadata.CurrentStateTime)
	if err != nil {
		return nil, errors.WithMessagef(err, "parsing finish time of job %s", jobID)
	}

	return &EnrichedResult{
		BenchmarkResult: *result,
		Created:         created,
		Finished:        finished,
		Elapsed:         finished.Sub(created).Truncate(time.Second),
		Metrics:         FilterMetrics(metadata.Metrics),
	}, nil
}

// FilterMetrics keeps the metrics whose name starts with the report prefix
// and whose context lacks the tentative marker, stringifies their scalars
// and sorts them by name. An empty input yields an empty, non-nil slice.
func FilterMetrics(updates []dataflow.MetricUpdate) []Metric {
	metrics := make([]Metric, 0, len(updates))
	for _, update := range updates {
		if !strings.HasPrefix(update.Name, metricPrefix) {
			continue
		}
		if _, tentative := update.Context[tentativeMarker]; tentative {
			continue
		}
		metrics = append(metrics, Metric{
			Name:  update.Name,
			Value: fmt.Sprintf("%v", update.Scalar),
		})
	}
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Name < metrics[j].Name
	})
	return metrics
}
