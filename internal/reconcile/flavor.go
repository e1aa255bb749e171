package reconcile

import (
	"context"
	"fmt"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
)

// FlavorPlanner converges flavor profiles. The backend replaces all size
// definitions of a region in one call, so each region is one atomic unit of
// work carrying the entire desired flavor set.
//
// This planner does not diff before writing: the create endpoint upserts by
// name+region, so every apply issues one create per region. This is a known
// asymmetry with the tag and storage planners.
type FlavorPlanner struct {
	gw  aria.Gateway
	cfg *config.Config
}

// NewFlavorPlanner creates a planner for the desired flavor set.
func NewFlavorPlanner(gw aria.Gateway, cfg *config.Config) *FlavorPlanner {
	return &FlavorPlanner{gw: gw, cfg: cfg}
}

// Kind implements Planner.
func (p *FlavorPlanner) Kind() Kind { return KindFlavorProfile }

// Plan resolves the spec's regions and emits one aggregate write per region.
func (p *FlavorPlanner) Plan(ctx context.Context, rep *Report) ([]Operation, error) {
	if len(p.cfg.Flavors) == 0 {
		return nil, fmt.Errorf("no flavor definitions in spec")
	}

	resolved, err := resolveSpecRegions(ctx, p.gw, p.cfg, rep)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]aria.FlavorSpec, len(p.cfg.Flavors))
	for _, f := range p.cfg.Flavors {
		mapping[f.Name] = aria.FlavorSpec{CPUCount: f.CPUCount, MemoryInMB: f.MemoryMB}
	}

	var ops []Operation
	for _, regionName := range p.cfg.RegionNames() {
		region, ok := resolved[regionName]
		if !ok {
			continue
		}
		req := aria.FlavorProfileRequest{
			Name:          p.cfg.FlavorProfileName,
			Description:   p.cfg.FlavorProfileDescription,
			RegionID:      region.ID,
			FlavorMapping: mapping,
		}
		ops = append(ops, Operation{
			Kind:   KindFlavorProfile,
			Name:   fmt.Sprintf("%s @ %s", p.cfg.FlavorProfileName, regionName),
			Action: ActionCreate,
			Detail: fmt.Sprintf("write %d flavor mappings to region %q", len(mapping), regionName),
			apply: func(ctx context.Context) error {
				_, err := p.gw.CreateFlavorProfile(ctx, req)
				return err
			},
		})
	}
	return ops, nil
}

// Verify re-fetches flavor profiles after apply and reports how many
// distinct flavor mappings each region actually carries, to catch silent
// partial application by the backend.
func (p *FlavorPlanner) Verify(ctx context.Context, rep *Report) {
	profiles, err := p.gw.FlavorProfiles(ctx)
	if err != nil {
		rep.Warnf("flavor verification failed: %v", err)
		return
	}
	for _, profile := range profiles {
		if profile.Name != p.cfg.FlavorProfileName {
			continue
		}
		rep.Notef("verified %s @ %s: %d flavor mappings present",
			profile.Name, profile.ExternalRegionID, len(profile.FlavorMappings.Mapping))
	}
}

// resolveSpecRegions lists regions and resolves the spec's region names.
// Unresolved names are warnings; resolving none is fatal for the calling
// planner because no meaningful work remains.
func resolveSpecRegions(ctx context.Context, gw aria.FabricReader, cfg *config.Config, rep *Report) (map[string]aria.Region, error) {
	regions, err := gw.Regions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	resolved, unresolved := NewRegionIndex(regions).Resolve(cfg.RegionNames())
	for _, name := range unresolved {
		rep.Warnf("region %q not found", name)
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("none of the %d configured regions resolved", len(cfg.Regions))
	}
	return resolved, nil
}
