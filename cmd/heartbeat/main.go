// main is the entry point for the heartbeat CLI.
package main

import (
	"github.com/chingu-voyage/heartbeat/cmd"
	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/internal/runstore"
)

func main() {
	err := cmd.Execute()

	// Close before any fatal exit so SQLite flushes cleanly.
	if closeErr := runstore.CloseStore(); closeErr != nil {
		contract.LogWarn("Cannot close run store", closeErr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
