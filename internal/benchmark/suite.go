package benchmark

import (
	"github.com/danielnorberg/scio/internal/pipeline"
)

const (
	numRecords      = 100_000_000
	largeNumRecords = 500_000_000
	keyBytes        = 10
	valueBytes      = 90
)

// Suite returns the benchmark definitions in report order. The list is
// constructed explicitly so there is no registration-order dependency.
func Suite() []Definition {
	return []Definition{
		{
			Name: "Shuffle",
			Variants: map[string][]string{
				"-Large": {"--numWorkers=16"},
			},
			Run: func(g *pipeline.Graph) error {
				g.RandomKV("input", numRecords, keyBytes, valueBytes).
					Reshuffle("shuffle", "input")
				return g.Err()
			},
		},
		{
			Name: "GroupByKey",
			Run: func(g *pipeline.Graph) error {
				g.RandomKV("input", numRecords, keyBytes, valueBytes).
					GroupByKey("group", "input")
				return g.Err()
			},
		},
		{
			Name: "Join",
			Variants: map[string][]string{
				"-OneToMany": {"--fanout=8"},
			},
			Run: func(g *pipeline.Graph) error {
				g.RandomKV("lhs", numRecords, keyBytes, valueBytes).
					RandomKV("rhs", numRecords, keyBytes, valueBytes).
					Join("join", "lhs", "rhs")
				return g.Err()
			},
		},
		{
			Name: "UuidKeys",
			Run: func(g *pipeline.Graph) error {
				g.UUIDKeys("input", numRecords).
					GroupByKey("group", "input")
				return g.Err()
			},
		},
		{
			Name: "ShuffleLargeRecords",
			Run: func(g *pipeline.Graph) error {
				g.RandomKV("input", largeNumRecords/100, keyBytes, valueBytes*100).
					Reshuffle("shuffle", "input")
				return g.Err()
			},
		},
	}
}
