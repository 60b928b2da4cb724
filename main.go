// main is the entry point for the dealsense CLI.
package main

import (
	"github.com/huangsam/dealsense/cmd"
	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseStores()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
