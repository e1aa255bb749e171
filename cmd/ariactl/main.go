// Package main is the entry point for the ariactl CLI.
//
// ariactl converges a declarative infrastructure specification against a
// VMware Aria Automation (vRA 8.x) deployment: flavor sizes, VM image
// mappings, storage profiles and capability tags.
//
// Commands: init, apply, list, version, completion.
//
// For detailed usage information, run:
//
//	ariactl --help
package main

import (
	"fmt"
	"os"

	"github.com/essentialco/ariactl/cmd/ariactl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
