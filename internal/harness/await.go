package harness

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// AwaitAll blocks until every submitted job has reached a terminal state,
// in whatever order the jobs happen to finish. There is deliberately no
// timeout: the harness is an offline experiment driver and a stalled job
// stalls the whole run.
//
// A job finishing unsuccessfully is not an error here; that is surfaced
// through the handle's state. Only tracking failures (context cancellation,
// a poller giving up) are returned, aggregated across all handles after
// every one has settled.
func AwaitAll(ctx context.Context, results []*BenchmarkResult) error {
	var errs *multierror.Error
	for _, result := range results {
		if _, err := result.Handle.Await(ctx); err != nil {
			errs = multierror.Append(errs, errors.WithMessagef(err, "awaiting job %s", result.Handle.JobID()))
		}
	}
	return errs.ErrorOrNil()
}
