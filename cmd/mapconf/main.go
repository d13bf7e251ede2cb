// Package main provides the CLI entrypoint for mapconf.
//
// mapconf configures how the records of a CSV, XML or fixed-width file are
// mapped onto the leaf paths of a JSON document:
//   - Lists the leaf paths of a JSON sample
//   - Detects the fields of a fixed-width sample
//   - Suggests mappings best-effort, reviewed in a YAML mapping file
//   - Saves the mappings on the conversion backend and fetches the JSON
package main

import (
	"os"

	"mapconf/internal/cli"
)

func main() {
	os.Exit(cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute())
}
