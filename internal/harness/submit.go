package harness

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/danielnorberg/scio/internal/benchmark"
	"github.com/danielnorberg/scio/internal/pipeline"
	"github.com/danielnorberg/scio/pkg/dataflow"
)

// RunPrefix derives the job-name prefix shared by every job of one run.
func RunPrefix(now time.Time) string {
	return "ScioBenchmark-" + now.UTC().Format("0102150405")
}

// JobName derives the remote job name from the run prefix, configuration
// name and user identity. Dataflow job names must be lower case, so the
// hyphen-joined string is lowercased as a whole.
func JobName(prefix, configuration, identity string) string {
	return strings.ToLower(prefix + "-" + configuration + "-" + identity)
}

// submit builds the job specification for one configuration and hands it to
// the engine. It returns as soon as the engine has accepted the job. Any
// error here is fatal for the whole run; there are no partial-submission
// semantics.
func (a *App) submit(
	ctx context.Context,
	definition benchmark.Definition,
	configuration benchmark.RunConfiguration,
	prefix string,
	identity string,
) (*BenchmarkResult, error) {
	graph := pipeline.NewGraph()
	if err := definition.Run(graph); err != nil {
		return nil, errors.WithMessage(err, "building job graph")
	}
	if err := graph.Err(); err != nil {
		return nil, errors.WithMessage(err, "building job graph")
	}

	// Common args first so configuration args win under the engine's
	// last-flag-wins resolution. No deduplication here.
	args := make([]string, 0, len(a.Params.CommonArgs)+len(configuration.ExtraArgs))
	args = append(args, a.Params.CommonArgs...)
	args = append(args, configuration.ExtraArgs...)

	spec := &dataflow.JobSpec{
		AppName: configuration.Name,
		JobName: JobName(prefix, configuration.Name, identity),
		Args:    args,
		Steps:   graph.Steps(),
	}

	handle, err := a.Engine.Submit(ctx, spec)
	if err != nil {
		return nil, err
	}

	return &BenchmarkResult{
		Name:      configuration.Name,
		ExtraArgs: configuration.ExtraArgs,
		Handle:    handle,
	}, nil
}
