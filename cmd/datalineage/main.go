// Package main provides the datalineage CLI.
package main

import (
	"os"

	"github.com/harborview-health/datalineage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
