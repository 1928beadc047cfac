package main

import (
	"os"
	"runtime"

	"github.com/eleviewr/eleviewr/pkg/eleviewr"
)

var version = "dev"

func init() {
	// SDL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		eleviewr.GetLogger().Error("eleviewr failed", "error", err)
		eleviewr.CloseLogger()
		os.Exit(1)
	}
	eleviewr.CloseLogger()
}
