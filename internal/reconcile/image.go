package reconcile

import (
	"context"
	"fmt"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
)

// ImagePlanner converges image profiles. Template names are resolved to
// fabric image ids through the composite (region, template) key; one write
// per region carries the full resolved image set. Unresolvable entries are
// warnings and never block the rest of their region's batch.
type ImagePlanner struct {
	gw  aria.Gateway
	cfg *config.Config
}

// NewImagePlanner creates a planner for the desired image mappings.
func NewImagePlanner(gw aria.Gateway, cfg *config.Config) *ImagePlanner {
	return &ImagePlanner{gw: gw, cfg: cfg}
}

// Kind implements Planner.
func (p *ImagePlanner) Kind() Kind { return KindImageProfile }

// Plan resolves every (region, template) pair and emits one aggregate write
// per region containing the resolved entries.
func (p *ImagePlanner) Plan(ctx context.Context, rep *Report) ([]Operation, error) {
	if len(p.cfg.Images) == 0 {
		return nil, fmt.Errorf("no image mappings in spec")
	}

	resolved, err := resolveSpecRegions(ctx, p.gw, p.cfg, rep)
	if err != nil {
		return nil, err
	}

	fabricImages, err := p.gw.FabricImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fabric images: %w", err)
	}
	index := NewFabricImageIndex(fabricImages)

	var ops []Operation
	for _, regionName := range p.cfg.RegionNames() {
		region, ok := resolved[regionName]
		if !ok {
			continue
		}

		mapping := make(map[string]aria.ImageRef)
		for _, img := range p.cfg.Images {
			templateName, ok := img.Templates[regionName]
			if !ok {
				continue
			}
			fabricImage, ok := index.Lookup(region.ID, templateName)
			if !ok {
				rep.Warnf("template %q not found in region %q for image %q",
					templateName, regionName, img.Name)
				continue
			}
			mapping[img.Name] = aria.ImageRef{ID: fabricImage.ID}
		}

		profileName := fmt.Sprintf("%s @ %s", p.cfg.ImageProfileName, regionName)
		if len(mapping) == 0 {
			rep.Record(Outcome{
				Kind:   KindImageProfile,
				Name:   profileName,
				Status: StatusSkipped,
				Detail: "no images resolved for region",
			})
			continue
		}

		req := aria.ImageProfileRequest{
			Name:         p.cfg.ImageProfileName,
			Description:  p.cfg.ImageProfileDescription,
			RegionID:     region.ID,
			ImageMapping: mapping,
		}
		ops = append(ops, Operation{
			Kind:   KindImageProfile,
			Name:   profileName,
			Action: ActionCreate,
			Detail: fmt.Sprintf("write %d image mappings to region %q", len(mapping), regionName),
			apply: func(ctx context.Context) error {
				_, err := p.gw.CreateImageProfile(ctx, req)
				return err
			},
		})
	}
	return ops, nil
}

// Verify re-fetches image profiles after apply and reports the mapping
// counts actually present per region.
func (p *ImagePlanner) Verify(ctx context.Context, rep *Report) {
	profiles, err := p.gw.ImageProfiles(ctx)
	if err != nil {
		rep.Warnf("image verification failed: %v", err)
		return
	}
	for _, profile := range profiles {
		if profile.Name != p.cfg.ImageProfileName {
			continue
		}
		rep.Notef("verified %s @ %s: %d image mappings present",
			profile.Name, profile.ExternalRegionID, len(profile.ImageMappings.Mapping))
	}
}
