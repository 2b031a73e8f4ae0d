// Package harness implements the orchestration core: it expands benchmark
// definitions into configurations, submits one remote job per configuration,
// waits for every job to reach a terminal state, enriches finished jobs with
// remotely-fetched metadata and renders the report.
package harness

import (
	"context"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/danielnorberg/scio/internal/benchmark"
	"github.com/danielnorberg/scio/internal/common"
	"github.com/danielnorberg/scio/pkg/dataflow"
)

const progressInterval = 10 * time.Second

// Params holds the user-customizable parameters of a run.
type Params struct {
	ConnectionDetails *dataflow.ConnectionDetails
	// CommonArgs are submitted with every configuration, before the
	// configuration's own extra args.
	CommonArgs []string
}

// App wires the orchestrator together. Out defaults to standard out but can
// be overridden in tests to make assertions on the report. Now and Identity
// exist so tests can pin the run prefix and the derived job names.
type App struct {
	Params   *Params
	Out      io.Writer
	Engine   dataflow.Engine
	Metadata dataflow.MetadataService
	Suite    []benchmark.Definition
	Now      func() time.Time
	Identity func() (string, error)
}

func New() *App {
	return &App{
		Params:   &Params{},
		Out:      os.Stdout,
		Suite:    benchmark.Suite(),
		Now:      time.Now,
		Identity: common.Identity,
	}
}

// Run drives one full orchestration pass over every definition whose name
// matches filter. Submission is sequential and fail-fast: the first
// submission error aborts the run with nothing reported. Once all jobs are
// in flight the call blocks, without a timeout, until every job has reached
// a terminal state, then renders one report section per configuration in
// submission order.
func (a *App) Run(ctx context.Context, filter *regexp.Regexp) error {
	definitions := selectDefinitions(a.Suite, filter)
	if len(definitions) == 0 {
		log.Warnf("no benchmarks match filter %q", filter)
		return nil
	}

	identity, err := a.Identity()
	if err != nil {
		return err
	}
	prefix := RunPrefix(a.Now())

	var results []*BenchmarkResult
	for _, definition := range definitions {
		for _, configuration := range benchmark.Expand(definition) {
			result, err := a.submit(ctx, definition, configuration, prefix, identity)
			if err != nil {
				return errors.WithMessagef(err, "submitting configuration %s", configuration.Name)
			}
			log.Infof("submitted configuration %s as job %s", configuration.Name, result.Handle.JobID())
			results = append(results, result)
		}
	}

	g, _ := errgroup.WithContext(ctx)
	stopProgress := make(chan struct{})
	g.Go(func() error {
		logProgress(stopProgress, results)
		return nil
	})

	err = AwaitAll(ctx, results)
	close(stopProgress)
	_ = g.Wait()
	if err != nil {
		return err
	}

	return a.report(ctx, results)
}

// report renders one section per result in submission order. Jobs that
// finished unsuccessfully get a placeholder section; only successful jobs
// are enriched.
func (a *App) report(ctx context.Context, results []*BenchmarkResult) error {
	for _, result := range results {
		if result.Handle.State().Succeeded() {
			enriched, err := a.Enrich(ctx, result)
			if err != nil {
				return err
			}
			renderEnriched(a.Out, enriched)
		} else {
			log.Warnf("job %s of configuration %s finished in state %s",
				result.Handle.JobID(), result.Name, result.Handle.State())
			renderUnsuccessful(a.Out, result)
		}
	}
	return nil
}

func selectDefinitions(suite []benchmark.Definition, filter *regexp.Regexp) []benchmark.Definition {
	selected := make([]benchmark.Definition, 0, len(suite))
	for _, definition := range suite {
		if filter == nil || filter.MatchString(definition.Name) {
			selected = append(selected, definition)
		}
	}
	return selected
}

// logProgress periodically logs how many jobs are still outstanding until
// stop is closed.
func logProgress(stop <-chan struct{}, results []*BenchmarkResult) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			outstanding := 0
			for _, result := range results {
				if !result.Handle.State().Terminal() {
					outstanding++
				}
			}
			log.Infof("%d of %d jobs still running", outstanding, len(results))
		}
	}
}
