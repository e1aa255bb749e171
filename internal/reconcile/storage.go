package reconcile

import (
	"context"
	"fmt"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
)

// StoragePlanner converges storage profiles. Existing profiles are updated
// with a full-document PUT that preserves every field of the current
// document; absent profiles are created only when the spec entry opts in
// with create: true.
type StoragePlanner struct {
	gw  aria.Gateway
	cfg *config.Config
}

// NewStoragePlanner creates a planner for the desired storage profiles.
func NewStoragePlanner(gw aria.Gateway, cfg *config.Config) *StoragePlanner {
	return &StoragePlanner{gw: gw, cfg: cfg}
}

// Kind implements Planner.
func (p *StoragePlanner) Kind() Kind { return KindStorageProfile }

// Plan compares each desired profile against the backend. Convergence has
// two dimensions: the tag set must match and, when the spec binds the
// profile to a compute cluster, the existing binding must match too.
func (p *StoragePlanner) Plan(ctx context.Context, rep *Report) ([]Operation, error) {
	entries := p.cfg.Tags.StorageProfiles
	if len(entries) == 0 {
		return nil, fmt.Errorf("no storage profiles in spec")
	}

	profiles, err := p.gw.StorageProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage profiles: %w", err)
	}
	byName := make(map[string]aria.StorageProfile, len(profiles))
	for _, sp := range profiles {
		byName[sp.Name] = sp
	}

	regions, err := p.gw.Regions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	regionIdx := NewRegionIndex(regions)

	computes, err := p.gw.FabricComputes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fabric computes: %w", err)
	}
	computeIdx := NewComputeIndex(computes)

	var ops []Operation
	for _, entry := range entries {
		computeID := ""
		if entry.Compute != "" {
			compute, ok := computeIdx.Lookup(entry.Compute)
			if !ok {
				rep.Warnf("compute %q not found for storage profile %q", entry.Compute, entry.Name)
			} else {
				computeID = compute.ID
			}
		}

		summary, exists := byName[entry.Name]
		if exists {
			if op, outcome := p.planUpdate(ctx, entry, summary, computeID); op != nil {
				ops = append(ops, *op)
			} else {
				rep.Record(outcome)
			}
			continue
		}

		if !entry.Create {
			rep.Record(Outcome{
				Kind:   KindStorageProfile,
				Name:   entry.Name,
				Status: StatusSkipped,
				Detail: "not found (set create: true to create)",
			})
			continue
		}
		if op, outcome := p.planCreate(entry, regionIdx, computeID); op != nil {
			ops = append(ops, *op)
		} else {
			rep.Record(outcome)
		}
	}
	return ops, nil
}

// planUpdate fetches the profile's full document and decides between a
// converged outcome and a full-replace update carrying every existing field
// plus the desired tags and compute binding.
func (p *StoragePlanner) planUpdate(ctx context.Context, entry config.StorageProfileSpec, summary aria.StorageProfile, computeID string) (*Operation, Outcome) {
	full, err := p.gw.StorageProfile(ctx, summary.ID)
	if err != nil {
		return nil, Outcome{
			Kind:   KindStorageProfile,
			Name:   entry.Name,
			Status: StatusFailed,
			Detail: "could not fetch full document",
			Err:    err,
		}
	}

	desired := DesiredTags(entry.Tags)
	tagsMatch := DiffTags(full.Tags, desired) == VerdictConverged
	bindingMatch := computeID == "" || full.ComputeHostID == computeID
	if tagsMatch && bindingMatch {
		return nil, Outcome{
			Kind:   KindStorageProfile,
			Name:   entry.Name,
			Status: StatusConverged,
			Detail: "tags and compute binding already match",
		}
	}

	req := aria.StorageProfileRequest{
		Name:                 full.Name,
		Description:          full.Description,
		DefaultItem:          full.DefaultItem,
		SupportsEncryption:   full.SupportsEncryption,
		Tags:                 desired,
		DiskProperties:       full.DiskProperties,
		DiskTargetProperties: full.DiskTargetProperties,
		ComputeHostID:        full.ComputeHostID,
		RegionID:             full.RegionID(),
	}
	if computeID != "" {
		req.ComputeHostID = computeID
	}

	id := summary.ID
	return &Operation{
		Kind:   KindStorageProfile,
		Name:   entry.Name,
		Action: ActionUpdate,
		Detail: "replace document with tags " + FormatTags(desired),
		apply: func(ctx context.Context) error {
			return p.gw.UpdateStorageProfile(ctx, id, req)
		},
	}, Outcome{}
}

// planCreate builds a create for an absent profile that opted in. The spec
// region must resolve; otherwise the entry is skipped.
func (p *StoragePlanner) planCreate(entry config.StorageProfileSpec, regions RegionIndex, computeID string) (*Operation, Outcome) {
	region, ok := regions.Lookup(entry.Region)
	if !ok {
		return nil, Outcome{
			Kind:   KindStorageProfile,
			Name:   entry.Name,
			Status: StatusSkipped,
			Detail: fmt.Sprintf("region %q not found", entry.Region),
		}
	}

	desired := DesiredTags(entry.Tags)
	req := aria.StorageProfileRequest{
		Name:        entry.Name,
		Description: entry.Description,
		DefaultItem: entry.Default,
		Tags:        desired,
		DiskProperties: map[string]any{
			"provisioningType": entry.ProvisioningType,
		},
		ComputeHostID: computeID,
		RegionID:      region.ID,
	}

	return &Operation{
		Kind:   KindStorageProfile,
		Name:   entry.Name,
		Action: ActionCreate,
		Detail: fmt.Sprintf("create in region %q with tags %s", entry.Region, FormatTags(desired)),
		apply: func(ctx context.Context) error {
			_, err := p.gw.CreateStorageProfile(ctx, req)
			return err
		},
	}, Outcome{}
}
