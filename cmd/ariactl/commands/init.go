package commands

import (
	"github.com/spf13/cobra"

	"github.com/essentialco/ariactl/cmd/ariactl/handlers"
)

// Init returns the command for interactively creating a starter spec file.
//
// The wizard collects connection settings and region names; resource
// sections are written as commented examples for the user to fill in.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a spec file",
		Long: `Interactively create a starter spec file.

This command asks for the Aria Automation connection settings and the
cloud account regions to manage, then writes a spec file with commented
example sections for flavors, images, storage profiles and tags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "ariactl.yaml", "Output file path")

	return cmd
}
