// Command coachctl runs the recommendation engine and the coaching pipeline
// from the command line.
package main

import (
	"os"

	"automation-coach/internal/shared/telemetry"
)

func main() {
	defer telemetry.Sync()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
