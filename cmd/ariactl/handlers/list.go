package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/reconcile"
)

// ListResource selects which backend listing to print.
type ListResource string

const (
	ListRegions         ListResource = "regions"
	ListFlavors         ListResource = "flavors"
	ListImages          ListResource = "images"
	ListComputes        ListResource = "computes"
	ListStorageProfiles ListResource = "storage-profiles"
	ListCloudZones      ListResource = "cloud-zones"
	ListNetworkProfiles ListResource = "network-profiles"
)

// List prints a read-only backend listing. These are the resolution inputs
// apply works from: listing them helps authoring the spec file and
// diagnosing unresolved names.
func List(ctx context.Context, configPath string, resource ListResource) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	if err := client.Login(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch resource {
	case ListRegions:
		return listRegions(ctx, client, w)
	case ListFlavors:
		return listFlavorProfiles(ctx, client, w)
	case ListImages:
		return listImages(ctx, client, w)
	case ListComputes:
		return listComputes(ctx, client, w)
	case ListStorageProfiles:
		return listStorageProfiles(ctx, client, w)
	case ListCloudZones:
		return listCloudZones(ctx, client, w)
	case ListNetworkProfiles:
		return listNetworkProfiles(ctx, client, w)
	default:
		return fmt.Errorf("unknown resource %q", resource)
	}
}

func listRegions(ctx context.Context, client Client, w *tabwriter.Writer) error {
	regions, err := client.Regions(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "NAME\tID\tEXTERNAL ID")
	for _, r := range regions {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.ID, r.ExternalRegionID)
	}
	return nil
}

// listFlavorProfiles groups existing flavor profiles by name: the same
// profile name appears once per region it was written to.
func listFlavorProfiles(ctx context.Context, client Client, w *tabwriter.Writer) error {
	profiles, err := client.FlavorProfiles(ctx)
	if err != nil {
		return err
	}

	byName := make(map[string][]aria.FlavorProfile)
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if _, seen := byName[p.Name]; !seen {
			names = append(names, p.Name)
		}
		byName[p.Name] = append(byName[p.Name], p)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "NAME\tREGION\tMAPPINGS\tSIZES")
	for _, name := range names {
		for _, p := range byName[name] {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				p.Name, p.ExternalRegionID, len(p.FlavorMappings.Mapping),
				formatFlavorMapping(p.FlavorMappings.Mapping))
		}
	}
	return nil
}

// formatFlavorMapping renders size definitions in stable name order.
func formatFlavorMapping(mapping map[string]aria.FlavorSpec) string {
	if len(mapping) == 0 {
		return "(no sizes)"
	}
	sizes := make([]string, 0, len(mapping))
	for name, spec := range mapping {
		sizes = append(sizes, fmt.Sprintf("%s (%d vCPU, %d MB)", name, spec.CPUCount, spec.MemoryInMB))
	}
	sort.Strings(sizes)
	return strings.Join(sizes, ", ")
}

func listImages(ctx context.Context, client Client, w *tabwriter.Writer) error {
	images, err := client.FabricImages(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "NAME\tID\tREGION\tOS FAMILY")
	for _, img := range images {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", img.Name, img.ID, img.RegionID(), img.OSFamily)
	}
	return nil
}

func listComputes(ctx context.Context, client Client, w *tabwriter.Writer) error {
	computes, err := client.FabricComputes(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "NAME\tID\tTAGS")
	for _, c := range computes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.ID, reconcile.FormatTags(c.Tags))
	}
	return nil
}

func listStorageProfiles(ctx context.Context, client Client, w *tabwriter.Writer) error {
	profiles, err := client.StorageProfiles(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "NAME\tID\tDEFAULT\tTAGS")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", p.Name, p.ID, p.DefaultItem, reconcile.FormatTags(p.Tags))
	}
	return nil
}

func listCloudZones(ctx context.Context, client Client, w *tabwriter.Writer) error {
	zones, err := client.CloudZones(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "NAME\tID\tTAGS")
	for _, z := range zones {
		fmt.Fprintf(w, "%s\t%s\t%s\n", z.Name, z.ID, reconcile.FormatTags(z.Tags))
	}
	return nil
}

func listNetworkProfiles(ctx context.Context, client Client, w *tabwriter.Writer) error {
	profiles, err := client.NetworkProfiles(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "NAME\tID\tTAGS")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.ID, reconcile.FormatTags(p.Tags))
	}
	return nil
}
