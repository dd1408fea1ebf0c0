// main is the entry point for the teamlens CLI.
package main

import (
	"fmt"
	"os"

	"teamlens/cmd"
	"teamlens/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()
	if closeErr := iocache.CloseStores(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Warning: could not close stores:", closeErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
