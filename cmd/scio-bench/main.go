package main

import (
	"github.com/danielnorberg/scio/cmd/scio-bench/cmd"
)

func main() {
	cmd.Execute()
}
