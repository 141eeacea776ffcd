// main is the entry point for the atlas CLI.
package main

import (
	"github.com/huangsam/atlas/cmd"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/internal/store"
)

func main() {
	defer store.CloseStore()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	cmd.SetStoreManager(store.Manager)
	if err := cmd.Execute(); err != nil {
		store.CloseStore()
		contract.LogFatal("Command failed", err)
	}
}
