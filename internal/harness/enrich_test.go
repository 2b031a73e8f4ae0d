package harness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielnorberg/scio/pkg/dataflow"
)

func enrichableResult(jobID string) *BenchmarkResult {
	handle := dataflow.NewJobHandle(jobID)
	handle.Resolve(dataflow.StateDone, nil)
	return &BenchmarkResult{Name: "GroupByKey", Handle: handle}
}

func TestEnrich(t *testing.T) {
	metadata := newFakeMetadataService()
	metadata.metadata["job-1"] = &dataflow.JobMetadata{
		JobID:            "job-1",
		CurrentState:     dataflow.StateDone,
		CreateTime:       "2021-01-01T00:00:00Z",
		CurrentStateTime: "2021-01-01T00:01:05Z",
		Metrics: []dataflow.MetricUpdate{
			{Name: "TotalShuffleBytes", Context: map[string]string{}, Scalar: 1024},
			{Name: "TotalElements", Context: map[string]string{}, Scalar: 42},
			{Name: "TotalElements", Context: map[string]string{"tentative": "true"}, Scalar: 99},
			{Name: "ElementsPerSecond", Context: map[string]string{}, Scalar: 7},
		},
	}

	app := New()
	app.Metadata = metadata

	enriched, err := app.Enrich(context.Background(), enrichableResult("job-1"))
	require.NoError(t, err)

	assert.Equal(t, 65*time.Second, enriched.Elapsed)
	assert.Equal(t, "2021-01-01T00:00:00Z", enriched.Created.Format(time.RFC3339))
	assert.Equal(t, []Metric{
		{Name: "TotalElements", Value: "42"},
		{Name: "TotalShuffleBytes", Value: "1024"},
	}, enriched.Metrics)
}

func TestEnrichRetriesMetadataFetch(t *testing.T) {
	metadata := newFakeMetadataService()
	metadata.failures["job-1"] = 2
	metadata.metadata["job-1"] = &dataflow.JobMetadata{
		CreateTime:       "2021-01-01T00:00:00Z",
		CurrentStateTime: "2021-01-01T00:00:05Z",
	}

	app := New()
	app.Metadata = metadata

	enriched, err := app.Enrich(context.Background(), enrichableResult("job-1"))
	require.NoError(t, err)
	assert.Equal(t, 3, metadata.callCount())
	assert.Equal(t, 5*time.Second, enriched.Elapsed)
}

func TestEnrichFailsAfterExhaustedRetries(t *testing.T) {
	metadata := newFakeMetadataService()
	metadata.failures["job-1"] = 10

	app := New()
	app.Metadata = metadata

	_, err := app.Enrich(context.Background(), enrichableResult("job-1"))
	assert.Error(t, err)
	assert.Equal(t, 3, metadata.callCount())
}

func TestEnrichFailsOnMissingJobID(t *testing.T) {
	app := New()
	app.Metadata = newFakeMetadataService()

	_, err := app.Enrich(context.Background(), enrichableResult(""))
	assert.Error(t, err)
}

func TestEnrichFailsOnMalformedTimestamp(t *testing.T) {
	metadata := newFakeMetadataService()
	metadata.metadata["job-1"] = &dataflow.JobMetadata{
		CreateTime:       "yesterday",
		CurrentStateTime: "2021-01-01T00:00:05Z",
	}

	app := New()
	app.Metadata = metadata

	_, err := app.Enrich(context.Background(), enrichableResult("job-1"))
	assert.Error(t, err)
}

func TestFilterMetrics(t *testing.T) {
	updates := []dataflow.MetricUpdate{
		{Name: "TotalElements", Context: map[string]string{}, Scalar: 42},
		{Name: "TotalElements", Context: map[string]string{"tentative": "true"}, Scalar: 99},
		{Name: "CurrentVcpuCount", Context: map[string]string{}, Scalar: 8},
		{Name: "TotalPdUsage", Scalar: "123"},
	}

	metrics := FilterMetrics(updates)
	assert.Equal(t, []Metric{
		{Name: "TotalElements", Value: "42"},
		{Name: "TotalPdUsage", Value: "123"},
	}, metrics)
}

func TestFilterMetricsIsIdempotent(t *testing.T) {
	updates := []dataflow.MetricUpdate{
		{Name: "TotalShuffleBytes", Scalar: 1024},
		{Name: "TotalElements", Scalar: 42},
	}

	once := FilterMetrics(updates)

	refiltered := make([]dataflow.MetricUpdate, 0, len(once))
	for _, m := range once {
		refiltered = append(refiltered, dataflow.MetricUpdate{Name: m.Name, Scalar: m.Value})
	}
	twice := FilterMetrics(refiltered)
	assert.Equal(t, once, twice)
}

func TestFilterMetricsOnEmptyInput(t *testing.T) {
	metrics := FilterMetrics(nil)
	assert.NotNil(t, metrics)
	assert.Empty(t, metrics)
}
