// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

// zoomreport is a command-line front end for the reporting client: one
// subcommand per report operation, credentials from flags or the environment,
// datasets written to stdout as CSV or JSON.
package main

import (
	"os"

	"github.com/clearinsights/zoomreport/internal/logging"
)

func main() {
	logging.InitStructureLogConfig()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
