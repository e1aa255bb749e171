package commands

import (
	"github.com/spf13/cobra"

	"github.com/essentialco/ariactl/cmd/ariactl/handlers"
)

// List returns the command group for read-only backend listings. These are
// the name-resolution inputs the apply command works from, exposed for
// spec authoring and troubleshooting.
func List() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backend resources used for name resolution",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to spec file (default: ariactl.yaml)")

	resources := []struct {
		use      string
		short    string
		resource handlers.ListResource
	}{
		{"regions", "List cloud account regions", handlers.ListRegions},
		{"flavors", "List existing flavor profiles and their size mappings", handlers.ListFlavors},
		{"images", "List fabric images (VM templates) per region", handlers.ListImages},
		{"computes", "List fabric compute clusters and their tags", handlers.ListComputes},
		{"storage-profiles", "List storage profiles and their tags", handlers.ListStorageProfiles},
		{"cloud-zones", "List cloud zones and their tags", handlers.ListCloudZones},
		{"network-profiles", "List network profiles and their tags", handlers.ListNetworkProfiles},
	}
	for _, r := range resources {
		resource := r.resource
		cmd.AddCommand(&cobra.Command{
			Use:   r.use,
			Short: r.short,
			RunE: func(sub *cobra.Command, _ []string) error {
				return handlers.List(sub.Context(), configPath, resource)
			},
		})
	}

	return cmd
}
