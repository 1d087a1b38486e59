// Command graphctl loads a graph fixture, runs a traversal over it, and
// prints summary statistics — a small harness for exercising the
// graphcore library locally.
package main

import "github.com/katalvlaran/graphcore/cmd/graphctl/cmd"

func main() {
	cmd.Execute()
}
