package harness

import (
	"time"

	"github.com/danielnorberg/scio/pkg/dataflow"
)

// BenchmarkResult ties one submitted configuration to its job handle.
// Immutable once the job has resolved; consumers only read it afterwards.
type BenchmarkResult struct {
	Name      string
	ExtraArgs []string
	Handle    *dataflow.JobHandle
}

// Metric is one reported metric, stringified for the report.
type Metric struct {
	Name  string
	Value string
}

// EnrichedResult is a finished result augmented with remotely-fetched
// timing and the filtered metric set. Consumed only by the reporter.
type EnrichedResult struct {
	BenchmarkResult
	Created  time.Time
	Finished time.Time
	Elapsed  time.Duration
	Metrics  []Metric
}
