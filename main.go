// main is the entry point for the deedscore CLI.
package main

import (
	"github.com/taxdeedflow/deedscore/cmd"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/internal/propstore"
)

func main() {
	err := cmd.Execute()

	// Always release the store and flush profiles, even on command failure.
	propstore.CloseStore()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Could not stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
