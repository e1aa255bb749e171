package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/essentialco/ariactl/cmd/ariactl/handlers"
)

// Apply returns the command that converges the backend against the spec.
//
// Exactly one of --dry-run and --execute is required, so a run is never
// ambiguous about whether it writes. At least one resource kind must be
// selected; --all selects every kind in the fixed apply order.
func Apply() *cobra.Command {
	var (
		configPath string
		dryRun     bool
		execute    bool
		opts       handlers.ApplyOptions
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Converge the backend against the spec",
		Long: `Converge the Aria Automation deployment against the desired spec.

Resource kinds are reconciled in a fixed order: flavor profiles, image
profiles, storage profiles, capability tags. A failure on one resource
never stops the rest of the run; the summary reports every outcome.

Examples:
  # Preview all changes without writing
  ariactl apply --all --dry-run

  # Apply only flavor and image profiles
  ariactl apply --flavors --images --execute

  # Apply everything using a specific spec file
  ariactl apply --all --execute -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dryRun == execute {
				return fmt.Errorf("exactly one of --dry-run and --execute is required")
			}
			if opts.All {
				opts.Flavors, opts.Images, opts.Storage, opts.Tags = true, true, true, true
			}
			if !opts.Flavors && !opts.Images && !opts.Storage && !opts.Tags {
				return fmt.Errorf("select at least one resource kind (--flavors, --images, --storage, --tags or --all)")
			}
			opts.DryRun = dryRun
			return handlers.Apply(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to spec file (default: ariactl.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan every change but write nothing")
	cmd.Flags().BoolVar(&execute, "execute", false, "Issue the planned writes")
	cmd.Flags().BoolVar(&opts.Flavors, "flavors", false, "Reconcile flavor profiles")
	cmd.Flags().BoolVar(&opts.Images, "images", false, "Reconcile image profiles")
	cmd.Flags().BoolVar(&opts.Storage, "storage", false, "Reconcile storage profiles")
	cmd.Flags().BoolVar(&opts.Tags, "tags", false, "Reconcile capability tags")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Reconcile every resource kind")

	return cmd
}
