// Package main is the entry point for the forbidden-valley CLI.
package main

import (
	"os"

	"github.com/pigeonworks-llc/forbidden-valley/cmd/forbidden-valley/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
