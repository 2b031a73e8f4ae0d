// Package benchmark holds the static benchmark definitions and their
// expansion into runnable configurations.
package benchmark

import (
	"sort"

	"github.com/danielnorberg/scio/internal/pipeline"
)

// Definition is one named workload plus optional argument variants.
// Definitions are immutable; Run only populates the supplied graph.
type Definition struct {
	Name string
	// Variants maps a name suffix to the extra submission arguments of
	// that variant. May be nil.
	Variants map[string][]string
	Run      func(g *pipeline.Graph) error
}

// RunConfiguration is one concrete instantiation of a definition, ready
// for submission.
type RunConfiguration struct {
	Name      string
	ExtraArgs []string
}

// Expand resolves a definition into its configurations: the base
// configuration first, then one per variant in ascending suffix order so
// expansion never depends on map iteration order.
func Expand(d Definition) []RunConfiguration {
	configurations := make([]RunConfiguration, 0, 1+len(d.Variants))
	configurations = append(configurations, RunConfiguration{Name: d.Name})

	suffixes := make([]string, 0, len(d.Variants))
	for suffix := range d.Variants {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)

	for _, suffix := range suffixes {
		configurations = append(configurations, RunConfiguration{
			Name:      d.Name + suffix,
			ExtraArgs: d.Variants[suffix],
		})
	}
	return configurations
}
