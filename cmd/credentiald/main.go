// Package main is the entry point for the credentials service.
package main

import (
	"os"

	"github.com/aussiebroadwan/credentials/internal/credentials/app"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = app.BuildVersion

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
