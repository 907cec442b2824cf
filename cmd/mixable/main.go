// Package main provides the CLI entrypoint for mixable.
//
// mixable merges layered XML configuration documents:
//   - A base document defines the schema by example
//   - Override documents name their base and change only what it allows
//   - The merged result is written as XML and as typed C#, Python and Go loaders
package main

import (
	"os"

	"mixable/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
