// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/essentialco/ariactl/internal/logging"
)

// Root returns the root command for the ariactl CLI.
func Root() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ariactl",
		Short: "Converge VMware Aria Automation against a declarative spec",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Setup(verbose, os.Stderr)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(List())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
