package reconcile

import (
	"context"
	"fmt"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
)

// taggedResource is the kind-independent view of an existing taggable
// resource: identifier, name and current tag set.
type taggedResource struct {
	ID   string
	Name string
	Tags []aria.Tag
}

// tagTarget is the capability shared by taggable resource kinds: list
// existing resources and replace one resource's tags with a full desired
// set, shaping the payload the way the kind's endpoint requires.
type tagTarget interface {
	kind() Kind
	fetch(ctx context.Context) (map[string]taggedResource, error)
	update(ctx context.Context, existing taggedResource, tags []aria.Tag) error
}

// cloudZoneTarget patches zone tags; the endpoint requires the resource's
// current name to be re-sent even though it does not change.
type cloudZoneTarget struct{ gw aria.Gateway }

func (t cloudZoneTarget) kind() Kind { return KindCloudZone }

func (t cloudZoneTarget) fetch(ctx context.Context) (map[string]taggedResource, error) {
	zones, err := t.gw.CloudZones(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]taggedResource, len(zones))
	for _, z := range zones {
		byName[z.Name] = taggedResource{ID: z.ID, Name: z.Name, Tags: z.Tags}
	}
	return byName, nil
}

func (t cloudZoneTarget) update(ctx context.Context, existing taggedResource, tags []aria.Tag) error {
	return t.gw.UpdateCloudZoneTags(ctx, existing.ID, existing.Name, tags)
}

type networkProfileTarget struct{ gw aria.Gateway }

func (t networkProfileTarget) kind() Kind { return KindNetworkProfile }

func (t networkProfileTarget) fetch(ctx context.Context) (map[string]taggedResource, error) {
	profiles, err := t.gw.NetworkProfiles(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]taggedResource, len(profiles))
	for _, p := range profiles {
		byName[p.Name] = taggedResource{ID: p.ID, Name: p.Name, Tags: p.Tags}
	}
	return byName, nil
}

func (t networkProfileTarget) update(ctx context.Context, existing taggedResource, tags []aria.Tag) error {
	return t.gw.UpdateNetworkProfileTags(ctx, existing.ID, tags)
}

type fabricComputeTarget struct{ gw aria.Gateway }

func (t fabricComputeTarget) kind() Kind { return KindFabricCompute }

func (t fabricComputeTarget) fetch(ctx context.Context) (map[string]taggedResource, error) {
	computes, err := t.gw.FabricComputes(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]taggedResource, len(computes))
	for _, c := range computes {
		byName[c.Name] = taggedResource{ID: c.ID, Name: c.Name, Tags: c.Tags}
	}
	return byName, nil
}

func (t fabricComputeTarget) update(ctx context.Context, existing taggedResource, tags []aria.Tag) error {
	return t.gw.UpdateFabricComputeTags(ctx, existing.ID, tags)
}

// TagPlanner converges capability tags on cloud zones, network profiles and
// fabric computes. Tag fields are full-replace on the backend, so planned
// writes always carry the complete desired set, and equal sets mean zero
// writes: re-running with unchanged desired tags issues no calls.
type TagPlanner struct {
	gw  aria.Gateway
	cfg *config.Config
}

// NewTagPlanner creates a planner for the desired tag assignments.
func NewTagPlanner(gw aria.Gateway, cfg *config.Config) *TagPlanner {
	return &TagPlanner{gw: gw, cfg: cfg}
}

// Kind implements Planner. The planner spans three taggable kinds; the
// cloud zone kind stands in for the group in kind-level reporting.
func (p *TagPlanner) Kind() Kind { return KindCloudZone }

// Plan walks each taggable kind in spec order. A listing failure aborts
// only that kind's entries; other kinds continue.
func (p *TagPlanner) Plan(ctx context.Context, rep *Report) ([]Operation, error) {
	groups := []struct {
		target  tagTarget
		entries []config.TagAssignment
	}{
		{cloudZoneTarget{gw: p.gw}, p.cfg.Tags.CloudZones},
		{networkProfileTarget{gw: p.gw}, p.cfg.Tags.NetworkProfiles},
		{fabricComputeTarget{gw: p.gw}, p.cfg.Tags.Compute},
	}

	total := 0
	for _, g := range groups {
		total += len(g.entries)
	}
	if total == 0 {
		return nil, fmt.Errorf("no tag assignments in spec")
	}

	var ops []Operation
	for _, g := range groups {
		if len(g.entries) == 0 {
			continue
		}
		existing, err := g.target.fetch(ctx)
		if err != nil {
			rep.FailKind(g.target.kind(), fmt.Errorf("failed to list resources: %w", err))
			continue
		}
		ops = append(ops, planTagUpdates(g.target, existing, g.entries, rep)...)
	}
	return ops, nil
}

// planTagUpdates applies the shared tag reconciliation algorithm to one
// taggable kind: absent resources are skipped with a warning, matching tag
// sets are converged, anything else becomes a full-replace update.
func planTagUpdates(target tagTarget, existing map[string]taggedResource, entries []config.TagAssignment, rep *Report) []Operation {
	var ops []Operation
	for _, entry := range entries {
		res, ok := existing[entry.Name]
		if !ok {
			rep.Record(Outcome{
				Kind:   target.kind(),
				Name:   entry.Name,
				Status: StatusSkipped,
				Detail: "not found on backend",
			})
			continue
		}

		desired := DesiredTags(entry.Tags)
		if DiffTags(res.Tags, desired) == VerdictConverged {
			rep.Record(Outcome{
				Kind:   target.kind(),
				Name:   entry.Name,
				Status: StatusConverged,
				Detail: "tags already match",
			})
			continue
		}

		ops = append(ops, Operation{
			Kind:   target.kind(),
			Name:   entry.Name,
			Action: ActionUpdate,
			Detail: "set tags " + FormatTags(desired),
			apply: func(ctx context.Context) error {
				return target.update(ctx, res, desired)
			},
		})
	}
	return ops
}
