// Package pipeline provides a declarative builder for the data-processing
// graphs submitted with each benchmark job. Benchmark bodies only describe
// the graph; execution of the transforms happens inside the remote engine.
package pipeline

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Step is one named transform in a job graph.
type Step struct {
	Name       string
	Kind       string
	Properties map[string]interface{}
}

// Graph accumulates the steps of one job. Builder methods record the first
// error encountered; callers must check Err before reading Steps.
type Graph struct {
	steps []Step
	names map[string]bool
	err   error
}

func NewGraph() *Graph {
	return &Graph{names: map[string]bool{}}
}

func (g *Graph) add(name, kind string, properties map[string]interface{}) *Graph {
	if g.err != nil {
		return g
	}
	if name == "" {
		g.err = errors.Errorf("step of kind %s has no name", kind)
		return g
	}
	if g.names[name] {
		g.err = errors.Errorf("duplicate step name %s", name)
		return g
	}
	g.names[name] = true
	g.steps = append(g.steps, Step{Name: name, Kind: kind, Properties: properties})
	return g
}

// RandomKV adds a synthetic source producing records with random keys and
// values of the given sizes.
func (g *Graph) RandomKV(name string, records int64, keyBytes, valueBytes int) *Graph {
	return g.add(name, "synthetic_random_kv", map[string]interface{}{
		"records":     records,
		"key_bytes":   keyBytes,
		"value_bytes": valueBytes,
	})
}

// UUIDKeys adds a synthetic source producing records keyed by random UUIDs.
// Each graph gets its own generator namespace so concurrently running jobs
// draw from distinct keyspaces.
func (g *Graph) UUIDKeys(name string, records int64) *Graph {
	return g.add(name, "synthetic_uuid_keys", map[string]interface{}{
		"records":   records,
		"namespace": uuid.NewString(),
	})
}

func (g *Graph) Reshuffle(name, input string) *Graph {
	return g.requireStep(input).add(name, "reshuffle", map[string]interface{}{
		"input": input,
	})
}

func (g *Graph) GroupByKey(name, input string) *Graph {
	return g.requireStep(input).add(name, "group_by_key", map[string]interface{}{
		"input": input,
	})
}

func (g *Graph) Join(name, lhs, rhs string) *Graph {
	return g.requireStep(lhs).requireStep(rhs).add(name, "join", map[string]interface{}{
		"inputs": []string{lhs, rhs},
	})
}

func (g *Graph) requireStep(name string) *Graph {
	if g.err == nil && !g.names[name] {
		g.err = errors.Errorf("unknown input step %s", name)
	}
	return g
}

// Steps returns the accumulated steps in declaration order.
func (g *Graph) Steps() []Step {
	return g.steps
}

// Err returns the first error recorded while building the graph.
func (g *Graph) Err() error {
	return g.err
}
