package harness

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/danielnorberg/scio/internal/common"
)

const labelWidth = 24

func writeRule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
}

func writeField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-*s: %s\n", labelWidth, label, value)
}

// renderEnriched writes one report section for a successfully finished and
// enriched result.
func renderEnriched(w io.Writer, result *EnrichedResult) {
	writeRule(w)
	writeField(w, "Benchmark", result.Name)
	writeField(w, "Extra arguments", strings.Join(result.ExtraArgs, " "))
	writeField(w, "State", string(result.Handle.State()))
	writeField(w, "Create time", result.Created.Format(time.RFC3339))
	writeField(w, "Finish time", result.Finished.Format(time.RFC3339))
	writeField(w, "Elapsed", common.FormatPeriod(result.Elapsed))
	for _, metric := range result.Metrics {
		writeField(w, metric.Name, metric.Value)
	}
}

// renderUnsuccessful writes a placeholder section for a job that reached a
// terminal state other than success. No enrichment is attempted for these.
func renderUnsuccessful(w io.Writer, result *BenchmarkResult) {
	writeRule(w)
	writeField(w, "Benchmark", result.Name)
	writeField(w, "Extra arguments", strings.Join(result.ExtraArgs, " "))
	writeField(w, "State", string(result.Handle.State()))
}
