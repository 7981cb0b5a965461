// main is the entry point for the tpmplot CLI.
package main

import (
	"github.com/huangsam/tpmplot/cmd"
	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/huangsam/tpmplot/internal/iocache"
)

func main() {
	defer iocache.CloseHistory()
	cmd.SetHistoryManager(iocache.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		iocache.CloseHistory()
		contract.LogFatal("tpmplot failed", err)
	}
}
